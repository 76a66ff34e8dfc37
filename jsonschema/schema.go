package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords a form schema can express are modeled.
type Schema struct {
	// Core
	Type     string `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Title    string `json:"title,omitempty"`
	Default  any    `json:"default,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`
	Enum     []any  `json:"enum,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	Pattern string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	// PropertyOrder records the declared field order, which JSON objects lose.
	PropertyOrder []string `json:"x-propertyOrder,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Extensions
	Hidden bool   `json:"x-hidden,omitempty"`
	Kind   string `json:"x-kind,omitempty"`
}

// Float returns a pointer to f, for Minimum and Maximum.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, for MinItems and MaxItems.
func Int(n int) *int { return &n }
