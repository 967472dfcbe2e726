package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arguments is the effective parameter set of one invocation.
type Arguments map[string]any

// Normalize builds the effective arguments of an invocation.
//
// Declared schema defaults are applied first, then every caller value that is
// not nil overwrites them; a nil caller value never removes a default. String
// values whose trimmed form starts with '{' or '[' are decoded as JSON. Keys
// unknown to the schema are passed through.
func Normalize(d *Descriptor, raw map[string]any) (Arguments, error) {
	args := Arguments(d.Defaults())

	for key, value := range raw {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && looksLikeJSON(s) {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err != nil {
				return nil, &ArgumentParseError{Tool: d.Name(), Argument: key, Value: s, Err: err}
			}
			value = parsed
		}
		args[key] = value
	}
	return args, nil
}

func looksLikeJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// Clone returns a shallow copy.
func (a Arguments) Clone() Arguments {
	out := make(Arguments, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// String returns the argument as a string, or "" when absent or not a string.
func (a Arguments) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// Float returns the argument as a float64 when it holds a number.
func (a Arguments) Float(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// FloatPtr is Float returning nil when the argument is absent or not numeric.
func (a Arguments) FloatPtr(key string) *float64 {
	f, ok := a.Float(key)
	if !ok {
		return nil
	}
	return &f
}

// Int returns the argument truncated to an int, or fallback.
func (a Arguments) Int(key string, fallback int) int {
	f, ok := a.Float(key)
	if !ok || math.IsNaN(f) {
		return fallback
	}
	return int(f)
}

// Bool returns the argument as a bool; "true"/"false" strings are accepted.
func (a Arguments) Bool(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// StringSlice returns the string elements of a list argument.
// A single string is treated as a one element list.
func (a Arguments) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// listLen reports the length of a list argument and whether it is a list at all.
func (a Arguments) listLen(key string) (int, bool) {
	switch v := a[key].(type) {
	case []any:
		return len(v), true
	case []string:
		return len(v), true
	}
	return 0, false
}
