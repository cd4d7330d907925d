package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSchema(t *testing.T) {
	t.Run("backup on a bound filter", func(t *testing.T) {
		f := New(Config{Source: "public_files", SourceName: "Public Files Directory"})
		schema := f.ConfigSchema(SchemaParams{Operation: OperationBackup})

		require.False(t, schema.Empty())
		assert.Equal(t, "Exclude Files from Public Files Directory", schema.Groups["default"].Title)
		assert.Equal(t, SchemaField{
			Type:     "text",
			Title:    "Exclude these files",
			Multiple: true,
			Group:    "default",
		}, schema.Fields[FieldExcludeFilepaths])
		assert.Len(t, schema.Fields, 1)
	})

	t.Run("title falls back to source", func(t *testing.T) {
		f := New(Config{Source: "public_files"})
		schema := f.ConfigSchema(SchemaParams{Operation: OperationBackup})
		assert.Equal(t, "Exclude Files from public_files", schema.Groups["default"].Title)
	})

	t.Run("empty for restore", func(t *testing.T) {
		f := New(Config{Source: "public_files"})
		assert.True(t, f.ConfigSchema(SchemaParams{Operation: OperationRestore}).Empty())
	})

	t.Run("empty when unbound", func(t *testing.T) {
		f := New(DefaultConfig())
		assert.True(t, f.ConfigSchema(SchemaParams{Operation: OperationBackup}).Empty())
	})

	t.Run("renders as json", func(t *testing.T) {
		f := New(Config{Source: "db", SourceName: "Default Database"})
		data, err := json.Marshal(f.ConfigSchema(SchemaParams{Operation: OperationBackup}))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"groups": {"default": {"title": "Exclude Files from Default Database"}},
			"fields": {"exclude_filepaths": {"type": "text", "title": "Exclude these files", "multiple": true, "group": "default"}}
		}`, string(data))

		empty, err := json.Marshal(New(DefaultConfig()).ConfigSchema(SchemaParams{}))
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(empty))
	})
}
