package backupkit

import (
	"sync"
)

// ChangeToken represents a change notification token.
//
// Consumers can either poll HasChanged, wait on Done, or register a callback.
// Once a token has changed it stays changed.
type ChangeToken interface {
	// HasChanged returns true if a change has occurred.
	HasChanged() bool

	// Done returns a channel closed when the change occurs.
	Done() <-chan struct{}

	// RegisterChangeCallback registers a callback to be invoked when the
	// change occurs. Callbacks registered after the change run immediately.
	RegisterChangeCallback(callback func()) (unregister func())
}

// CallbackChangeToken is a ChangeToken signalled explicitly by its owner,
// typically a destination forwarding native file system events.
type CallbackChangeToken struct {
	mu        sync.Mutex
	done      chan struct{}
	changed   bool
	callbacks map[int]func()
	next      int
}

// NewCallbackChangeToken creates a new unsignalled token.
func NewCallbackChangeToken() *CallbackChangeToken {
	return &CallbackChangeToken{
		done:      make(chan struct{}),
		callbacks: make(map[int]func()),
	}
}

func (t *CallbackChangeToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

func (t *CallbackChangeToken) Done() <-chan struct{} {
	return t.done
}

func (t *CallbackChangeToken) RegisterChangeCallback(callback func()) (unregister func()) {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		callback()
		return func() {}
	}
	id := t.next
	t.next++
	t.callbacks[id] = callback
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.callbacks, id)
		t.mu.Unlock()
	}
}

// SignalChange marks the token as changed and invokes all callbacks.
// Only the first call has any effect.
func (t *CallbackChangeToken) SignalChange() {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		return
	}
	t.changed = true
	close(t.done)
	callbacks := make([]func(), 0, len(t.callbacks))
	for _, cb := range t.callbacks {
		callbacks = append(callbacks, cb)
	}
	t.callbacks = nil
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}
