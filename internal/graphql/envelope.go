package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Error is one entry of the GraphQL "errors" list.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Envelope is the raw downstream reply. Every top-level data field may be null.
type Envelope struct {
	Data   map[string]json.RawMessage `json:"data,omitempty"`
	Errors []Error                    `json:"errors,omitempty"`
}

// Usable reports whether the envelope carries at least one non-null data field.
func (e *Envelope) Usable() bool {
	if e == nil || len(e.Data) == 0 {
		return false
	}
	for _, v := range e.Data {
		if !isNull(v) {
			return true
		}
	}
	return false
}

// Field returns the raw value of a top-level data field and whether it is
// present and non-null.
func (e *Envelope) Field(name string) (json.RawMessage, bool) {
	if e == nil {
		return nil, false
	}
	raw, ok := e.Data[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// Decode unmarshals a top-level data field into out. It returns false without
// error when the field is absent or null.
func (e *Envelope) Decode(name string, out any) (bool, error) {
	raw, ok := e.Field(name)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// ErrorMessages returns the messages of all reported errors.
func (e *Envelope) ErrorMessages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		out = append(out, err.Message)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || strings.EqualFold(string(trimmed), "null")
}
