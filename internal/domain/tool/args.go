package tool

import (
	"os"
	"strings"
)

// Args is a validated argument set produced by Schema.Validate.
// Getters return the zero value when a field is absent; defaults were
// already applied during validation.
type Args map[string]any

func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Args) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// IntOk distinguishes an absent integer field from a zero value.
func (a Args) IntOk(name string) (int, bool) {
	switch v := a[name].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

// FloatOk distinguishes an absent numeric field from a zero value,
// needed by tools where 0 is a valid coordinate.
func (a Args) FloatOk(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

func (a Args) StringSlice(name string) []string {
	switch v := a[name].(type) {
	case []string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return items
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Value returns the raw field value for union-shaped arguments.
func (a Args) Value(name string) any {
	return a[name]
}

// envVarsKey is the per-call credential override mapping. It is not a
// declared schema field; callers pass it alongside regular arguments.
const envVarsKey = "env_vars"

// Env resolves credentials for this invocation: the per-call env_vars
// override wins, the process environment is the fallback. With a
// prefix, every matching process variable is included; explicit names
// are always looked up.
func (a Args) Env(prefix string, names ...string) map[string]string {
	env := make(map[string]string)

	if prefix != "" {
		for _, entry := range os.Environ() {
			key, value, ok := strings.Cut(entry, "=")
			if ok && strings.HasPrefix(key, prefix) {
				env[key] = value
			}
		}
	}
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			env[name] = value
		}
	}

	if override, ok := a[envVarsKey].(map[string]any); ok {
		for key, value := range override {
			if s, ok := value.(string); ok && s != "" {
				env[key] = s
			}
		}
	}
	if override, ok := a[envVarsKey].(map[string]string); ok {
		for key, value := range override {
			if value != "" {
				env[key] = value
			}
		}
	}

	return env
}
