package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatRaw  OutputFormat = "raw"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat accepts raw, json and yaml.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatRaw, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (valid: raw, json, yaml)", s)
	}
}

// FormatOutput renders a tool response. Raw keeps the compact text exactly as
// an MCP client would receive it. A truncated response is not valid JSON, so
// json and yaml fall back to the raw text for it.
func FormatOutput(text string, format OutputFormat) (string, error) {
	switch format {
	case OutputFormatRaw, "":
		return text, nil
	case OutputFormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
			return text, nil
		}
		return buf.String(), nil
	case OutputFormatYAML:
		var data interface{}
		if err := json.Unmarshal([]byte(text), &data); err != nil {
			return text, nil
		}
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return string(yamlData), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
