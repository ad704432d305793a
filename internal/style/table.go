package style

import (
	"regexp"
	"strings"
)

// Align controls horizontal cell alignment within a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one table column. Width is the content width in
// cells; values longer than Width are truncated with an ellipsis.
type Column struct {
	Name  string
	Width int
	Align Align
}

// Table renders rows of styled text in fixed-width columns. Padding is
// computed from the unstyled text so ANSI escapes don't skew widths.
type Table struct {
	columns   []Column
	rows      [][]string
	headerSep bool
	indent    string
}

const columnGap = "  "

// NewTable creates a table with the given columns. The header
// separator is on and the indent is two spaces by default.
func NewTable(columns ...Column) *Table {
	return &Table{
		columns:   columns,
		headerSep: true,
		indent:    "  ",
	}
}

// SetIndent sets the prefix written before every line.
func (t *Table) SetIndent(indent string) *Table {
	t.indent = indent
	return t
}

// SetHeaderSeparator toggles the rule between header and rows.
func (t *Table) SetHeaderSeparator(on bool) *Table {
	t.headerSep = on
	return t
}

// AddRow appends a row. Missing cells are padded with empty strings;
// extra cells beyond the column count are dropped.
func (t *Table) AddRow(values ...string) *Table {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
	return t
}

// Render returns the table as a newline-terminated string. A table
// with no columns renders as the empty string.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var b strings.Builder
	cells := make([]string, len(t.columns))

	for i, col := range t.columns {
		cells[i] = t.pad(Bold.Render(col.Name), col.Name, col.Width, col.Align)
	}
	b.WriteString(t.indent + strings.Join(cells, columnGap) + "\n")

	if t.headerSep {
		for i, col := range t.columns {
			cells[i] = strings.Repeat("─", col.Width)
		}
		b.WriteString(t.indent + Dim.Render(strings.Join(cells, columnGap)) + "\n")
	}

	for _, row := range t.rows {
		for i, col := range t.columns {
			styled := row[i]
			plain := stripAnsi(styled)
			if len([]rune(plain)) > col.Width {
				// Styling is dropped for truncated cells since escape
				// sequences can't be sliced safely.
				styled = truncate(plain, col.Width)
				plain = styled
			}
			cells[i] = t.pad(styled, plain, col.Width, col.Align)
		}
		b.WriteString(t.indent + strings.Join(cells, columnGap) + "\n")
	}

	return b.String()
}

// pad aligns styled text within width, measuring by the plain form.
// Text at or over width is returned unchanged.
func (t *Table) pad(styled, plain string, width int, align Align) string {
	gap := width - len([]rune(plain))
	if gap <= 0 {
		return styled
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + styled
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + styled + strings.Repeat(" ", gap-left)
	default:
		return styled + strings.Repeat(" ", gap)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// stripAnsi removes ANSI SGR escape sequences.
func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
