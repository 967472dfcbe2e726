package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"netpulse/internal/tool"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// Color palette with light/dark mode support
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#5A56E0",
		Dark:  "#7571F9",
	}
	ColorSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#404040",
	}
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	nameStyle     = cellStyle.Foreground(ColorPrimary)
	argsStyle     = cellStyle.Foreground(ColorSecondary)
	requiredStyle = lipgloss.NewStyle().Foreground(ColorWarning)
)

const (
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 120

	minDescriptionWidth = 20
)

// Truncate shortens s to at most width display cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// firstLine returns the first line of a tool description.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// arguments lists the argument names of d, sorted, required ones marked with *.
func arguments(d *tool.Descriptor) string {
	required := make(map[string]bool, len(d.Tool.InputSchema.Required))
	for _, name := range d.Tool.InputSchema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(d.Tool.InputSchema.Properties))
	for name := range d.Tool.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if required[name] {
			names[i] = name + requiredStyle.Render("*")
		}
	}
	return strings.Join(names, ", ")
}

// PrintTools writes a table of the catalog fitted to width display cells.
func PrintTools(w io.Writer, descriptors []*tool.Descriptor, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	nameWidth := 0
	for _, d := range descriptors {
		nameWidth = max(nameWidth, runewidth.StringWidth(d.Name()))
	}
	// borders and cell padding of a two column table
	descWidth := max(width-nameWidth-7, minDescriptionWidth)

	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		rows = append(rows, []string{d.Name(), Truncate(firstLine(d.Tool.Description), descWidth)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("TOOL", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintf(w, "%s\n%d tools\n", t.Render(), len(descriptors))
	return err
}

// PrintTool writes the detail view of a single tool.
func PrintTool(w io.Writer, d *tool.Descriptor) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(d.Name()),
		cellStyle.Render(d.Tool.Description),
		argsStyle.Render("arguments: "+arguments(d)),
	)
	_, err := fmt.Fprintln(w, body)
	return err
}
