package filter

import "fmt"

// Operations a schema can be requested for.
const (
	OperationBackup  = "backup"
	OperationRestore = "restore"
)

// SchemaParams describes the context a configuration form is rendered in.
type SchemaParams struct {
	Operation string
}

// Schema is the field description consumed by an external configuration UI.
type Schema struct {
	Groups map[string]SchemaGroup `json:"groups,omitempty"`
	Fields map[string]SchemaField `json:"fields,omitempty"`
}

type SchemaGroup struct {
	Title string `json:"title"`
}

type SchemaField struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Multiple bool   `json:"multiple,omitempty"`
	Group    string `json:"group,omitempty"`
}

// Empty reports whether the schema has nothing to render.
func (s Schema) Empty() bool {
	return len(s.Groups) == 0 && len(s.Fields) == 0
}

// ConfigSchema returns the settings form for the filter. It is empty unless
// the filter is bound to a source and the operation is a backup.
func (f *ExcludeFilter) ConfigSchema(params SchemaParams) Schema {
	if f.cfg.Source == "" || params.Operation != OperationBackup {
		return Schema{}
	}

	return Schema{
		Groups: map[string]SchemaGroup{
			"default": {Title: fmt.Sprintf("Exclude Files from %s", f.sourceName())},
		},
		Fields: map[string]SchemaField{
			FieldExcludeFilepaths: {
				Type:     "text",
				Title:    "Exclude these files",
				Multiple: true,
				Group:    "default",
			},
		},
	}
}

func (f *ExcludeFilter) sourceName() string {
	if f.cfg.SourceName != "" {
		return f.cfg.SourceName
	}
	return f.cfg.Source
}
