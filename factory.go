package backupkit

import (
	"fmt"
	"sort"
	"sync"
)

// DestinationFactory creates a Destination from a config and shared options
type DestinationFactory func(cfg *Config, options ...Option) (Destination, error)

var (
	destinationFactories = make(map[string]DestinationFactory)
	factoryMutex         sync.RWMutex
)

// RegisterDestination registers a destination factory under name
func RegisterDestination(name string, factory DestinationFactory) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	destinationFactories[name] = factory
}

// RegisteredDestinations returns the sorted names of all registered destinations
func RegisteredDestinations() []string {
	factoryMutex.RLock()
	defer factoryMutex.RUnlock()

	names := make([]string, 0, len(destinationFactories))
	for name := range destinationFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateDestination creates a destination instance from config
func CreateDestination(cfg *Config, options ...Option) (Destination, error) {
	factoryMutex.RLock()
	factory, exists := destinationFactories[cfg.Destination]
	factoryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("destination %s not registered", cfg.Destination)
	}

	return factory(cfg, options...)
}
