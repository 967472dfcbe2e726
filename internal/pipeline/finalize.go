package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"netpulse/internal/tool"
	"netpulse/pkg/logging"

	"github.com/dustin/go-humanize"
)

// DefaultMaxResponseLength is the response budget, in characters (runes),
// when none is configured.
const DefaultMaxResponseLength = 200000

// TruncationNotice precedes every truncated response.
const TruncationNotice = "[Response truncated: the full result exceeded the configured maximum length. " +
	"Narrow the time frame, filter by IDs or lower the limit to get a complete answer.]\n"

// ResolveMaxLength parses a configured maximum. Empty, non-numeric and
// non-positive values fall back to DefaultMaxResponseLength.
func ResolveMaxLength(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultMaxResponseLength
	}
	return n
}

// Finalizer serializes results and enforces the response budget.
type Finalizer struct {
	MaxLength int
}

// NewFinalizer returns a Finalizer; a non-positive max uses the default.
func NewFinalizer(maxLength int) *Finalizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxResponseLength
	}
	return &Finalizer{MaxLength: maxLength}
}

// Finalize renders result as compact JSON. Output longer than MaxLength
// characters is cut to its first MaxLength characters and prefixed with
// TruncationNotice. The cut text is usually not valid JSON.
func (f *Finalizer) Finalize(result tool.Result) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	text := strings.TrimSuffix(buf.String(), "\n")

	max := f.MaxLength
	if max <= 0 {
		max = DefaultMaxResponseLength
	}
	if len(text) <= max {
		return text, nil
	}
	chars := utf8.RuneCountInString(text)
	if chars <= max {
		return text, nil
	}

	cut, n := 0, 0
	for i := range text {
		if n == max {
			cut = i
			break
		}
		n++
	}
	logging.Warn("Pipeline", "Response of %s characters (%s) exceeds the limit of %s characters, truncating",
		humanize.Comma(int64(chars)), humanize.Bytes(uint64(len(text))), humanize.Comma(int64(max)))
	return TruncationNotice + text[:cut], nil
}
