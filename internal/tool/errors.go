package tool

import (
	"fmt"
	"strings"
)

// ArgumentParseError is returned when a JSON-looking string argument does not parse.
type ArgumentParseError struct {
	Tool     string
	Argument string
	Value    string
	Err      error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("tool %s: argument %q looks like JSON but could not be parsed (value: %s): %v", e.Tool, e.Argument, e.Value, e.Err)
}

func (e *ArgumentParseError) Unwrap() error {
	return e.Err
}

// MissingRequiredInputError is returned by an input policy when a required
// argument is absent. Hint tells the caller how to obtain the missing input.
type MissingRequiredInputError struct {
	Tool     string
	Argument string
	Hint     string
}

func (e *MissingRequiredInputError) Error() string {
	var sb strings.Builder
	if e.Tool != "" {
		sb.WriteString("tool " + e.Tool + ": ")
	}
	sb.WriteString(fmt.Sprintf("argument %q is required and must not be empty", e.Argument))
	if e.Hint != "" {
		sb.WriteString(". ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}

// NotFoundError is returned when a tool name is not registered.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("tool %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
