package tool

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var ErrValidationFailed = errors.New("tool arguments validation failed")

// Field type tags for schema declarations.
const (
	TypeString     = "string"
	TypeInteger    = "integer"
	TypeNumber     = "number"
	TypeBoolean    = "boolean"
	TypeStringList = "string_list"
	TypeAny        = "any"
)

// Field declares the shape and constraints of one schema field.
// Zero-valued constraints are not enforced.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
	Min         *float64
	Max         *float64
	MinLen      int
	MaxLen      int
	Pattern     string
	Enum        []string
	Examples    []any

	pattern *regexp.Regexp
}

// Schema is the statically declared argument table of one tool.
// Field order is preserved for listing and documentation.
type Schema struct {
	fields []Field
}

// NewSchema compiles a schema from its field declarations.
// Panics on an invalid pattern; schemas are built once at process start.
func NewSchema(fields ...Field) Schema {
	compiled := make([]Field, len(fields))
	for i, f := range fields {
		if f.Pattern != "" {
			f.pattern = regexp.MustCompile(f.Pattern)
		}
		compiled[i] = f
	}
	return Schema{fields: compiled}
}

// Fields returns the declared fields in declaration order.
func (s Schema) Fields() []Field {
	return s.fields
}

// ValidationError reports the first constraint violated by raw arguments.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrValidationFailed.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func failValidation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks raw arguments against the schema and returns the
// validated argument set with defaults applied. Validation is total:
// it runs to the first violation before any business logic executes.
func (s Schema) Validate(raw map[string]any) (Args, error) {
	out := make(map[string]any, len(s.fields))

	for _, f := range s.fields {
		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Required {
				return nil, failValidation(f.Name, "is required")
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		coerced, err := coerceValue(f, value)
		if err != nil {
			return nil, err
		}
		if err := checkConstraints(f, coerced); err != nil {
			return nil, err
		}
		out[f.Name] = coerced
	}

	// Pass through undeclared keys untouched; the env_vars override and
	// union-shaped fields ride on this.
	for key, value := range raw {
		if _, declared := out[key]; declared {
			continue
		}
		if !s.declares(key) {
			out[key] = value
		}
	}

	return Args(out), nil
}

func (s Schema) declares(name string) bool {
	for _, f := range s.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func coerceValue(f Field, value any) (any, error) {
	switch f.Type {
	case TypeString:
		v, ok := value.(string)
		if !ok {
			return nil, failValidation(f.Name, "must be a string, got %T", value)
		}
		return v, nil
	case TypeInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, failValidation(f.Name, "must be an integer, got %v", v)
			}
			return int(v), nil
		default:
			return nil, failValidation(f.Name, "must be an integer, got %T", value)
		}
	case TypeNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, failValidation(f.Name, "must be a number, got %T", value)
		}
	case TypeBoolean:
		v, ok := value.(bool)
		if !ok {
			return nil, failValidation(f.Name, "must be a boolean, got %T", value)
		}
		return v, nil
	case TypeStringList:
		switch v := value.(type) {
		case []string:
			return v, nil
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, failValidation(f.Name, "must be a list of strings, got %T element", item)
				}
				items = append(items, s)
			}
			return items, nil
		default:
			return nil, failValidation(f.Name, "must be a list of strings, got %T", value)
		}
	case TypeAny, "":
		return value, nil
	default:
		return nil, failValidation(f.Name, "has unknown schema type %q", f.Type)
	}
}

func checkConstraints(f Field, value any) error {
	if s, ok := value.(string); ok {
		if f.MinLen > 0 && len(s) < f.MinLen {
			return failValidation(f.Name, "must be at least %d characters", f.MinLen)
		}
		if f.MaxLen > 0 && len(s) > f.MaxLen {
			return failValidation(f.Name, "must be at most %d characters", f.MaxLen)
		}
		if f.pattern != nil && !f.pattern.MatchString(s) {
			return failValidation(f.Name, "must match pattern %s", f.Pattern)
		}
		if len(f.Enum) > 0 && !containsString(f.Enum, s) {
			return failValidation(f.Name, "must be one of %v", f.Enum)
		}
	}

	var num float64
	var isNum bool
	switch v := value.(type) {
	case int:
		num, isNum = float64(v), true
	case float64:
		num, isNum = v, true
	}
	if isNum {
		if f.Min != nil && num < *f.Min {
			return failValidation(f.Name, "must be >= %v", *f.Min)
		}
		if f.Max != nil && num > *f.Max {
			return failValidation(f.Name, "must be <= %v", *f.Max)
		}
	}

	return nil
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// MinMax is a shorthand for numeric range constraints.
func MinMax(min, max float64) (*float64, *float64) {
	return &min, &max
}

// FloatPtr returns a pointer to v, for one-sided range constraints.
func FloatPtr(v float64) *float64 { return &v }

// JSONSchema renders the schema as a JSON-Schema-shaped document, the
// form dispatchers expose in tool listings.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.fields))
	required := make([]string, 0)

	for _, f := range s.fields {
		prop := map[string]any{}
		switch f.Type {
		case TypeStringList:
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
		case TypeAny, "":
			// unconstrained
		default:
			prop["type"] = f.Type
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		if f.Min != nil {
			prop["minimum"] = *f.Min
		}
		if f.Max != nil {
			prop["maximum"] = *f.Max
		}
		if f.MinLen > 0 {
			prop["minLength"] = f.MinLen
		}
		if f.MaxLen > 0 {
			prop["maxLength"] = f.MaxLen
		}
		if f.Pattern != "" {
			prop["pattern"] = f.Pattern
		}
		if len(f.Enum) > 0 {
			prop["enum"] = f.Enum
		}
		if len(f.Examples) > 0 {
			prop["examples"] = f.Examples
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}
