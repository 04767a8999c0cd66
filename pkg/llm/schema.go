package llm

// FunctionSpec names the function the model is forced to call and describes
// its argument schema. The schema uses JSON Schema object notation
// ("type"/"properties"/"required"), which is what the completion service
// expects for function parameters.
//
// Forcing a named function is what turns a free-text completion into a
// machine-parseable structured extraction: the model cannot answer except by
// producing arguments that fit this shape.
type FunctionSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// StringProperty is a convenience for a string-typed schema field.
func StringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// StringArrayProperty is a convenience for a list-of-strings schema field.
func StringArrayProperty(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// ObjectSchema assembles a JSON Schema object from named properties and the
// list of required field names.
func ObjectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
