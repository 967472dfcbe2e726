package tool

import (
	"encoding/json"
	"errors"

	"netpulse/internal/graphql"

	"github.com/mark3labs/mcp-go/mcp"
)

// Result is the final, tool specific structure handed to the serializer.
type Result struct {
	Data any `json:"data"`
}

// InputPolicy adjusts or validates the effective arguments before they become
// GraphQL variables. Implementations must not mutate their input.
type InputPolicy interface {
	Apply(args Arguments) (Arguments, error)
}

// ResponsePolicy reshapes a usable downstream envelope into the tool's output.
type ResponsePolicy interface {
	Transform(args Arguments, env *graphql.Envelope) (Result, error)
}

// Descriptor is one entry of the tool catalog.
type Descriptor struct {
	// Tool carries the name, description and the JSON Schema of the arguments,
	// including the per-field defaults used by Normalize.
	Tool mcp.Tool
	// Query is the GraphQL document sent downstream.
	Query string
	// Input is optional; nil means the arguments are used unchanged.
	Input InputPolicy
	// Response is optional; nil means the envelope data is returned as is.
	Response ResponsePolicy
}

// Name returns the tool name.
func (d *Descriptor) Name() string {
	return d.Tool.Name
}

// Defaults returns a fresh copy of every declared default keyed by argument name.
func (d *Descriptor) Defaults() map[string]any {
	out := make(map[string]any)
	for name, raw := range d.Tool.InputSchema.Properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok {
			out[name] = deepCopy(def)
		}
	}
	return out
}

// ApplyInput runs the input policy, attributing guard failures to this tool.
func (d *Descriptor) ApplyInput(args Arguments) (Arguments, error) {
	if d.Input == nil {
		return args, nil
	}
	out, err := d.Input.Apply(args)
	if err != nil {
		var missing *MissingRequiredInputError
		if errors.As(err, &missing) && missing.Tool == "" {
			missing.Tool = d.Name()
		}
		return nil, err
	}
	return out, nil
}

// Default declares a default value on a schema property. The value is stored
// the way encoding/json would decode it, so defaults and caller-supplied values
// share one representation.
func Default(value any) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["default"] = jsonShape(value)
	}
}

func jsonShape(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
