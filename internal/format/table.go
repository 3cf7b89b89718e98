package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/journal"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color used for the header and separator rows.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":       5,
			"Date":     19,
			"Event":    9,
			"Level":    8,
			"Position": 8,
			"Key":      14,
			"Title":    32,
			"Session":  36,
			"Events":   6,
		},
		ColumnAlignments: map[string]string{
			"ID":     "right",
			"Events": "right",
		},
	}
}

// TableColumn represents a column in the entry table.
type TableColumn struct {
	Name      string
	Width     int
	Alignment string
	// Extractor extracts the cell value from an entry.
	Extractor func(journal.Entry) string
}

// TableFormatter prints entries as aligned columns.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	column := func(name string, extract func(journal.Entry) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	return &TableFormatter{
		config: config,
		columns: []TableColumn{
			column("ID", func(e journal.Entry) string { return strconv.FormatInt(e.ID, 10) }),
			column("Date", func(e journal.Entry) string { return displayTime(e.Timestamp) }),
			column("Event", func(e journal.Entry) string { return e.Event }),
			column("Level", func(e journal.Entry) string { return e.Level }),
			column("Position", func(e journal.Entry) string { return e.Position }),
			column("Key", func(e journal.Entry) string { return e.Key }),
			column("Title", func(e journal.Entry) string { return e.Title }),
		},
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// WithoutHeaders turns off the header and separator rows.
func (f *TableFormatter) WithoutHeaders() *TableFormatter {
	f.config.ShowHeaders = false
	return f
}

// FormatEntries formats entries as a table.
func (f *TableFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	if len(entries) == 0 {
		return nil
	}
	if err := f.writeHeader(f.columns, writer); err != nil {
		return err
	}
	for _, e := range entries {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = formatString(col.Extractor(e), col.Width, col.Alignment)
		}
		if err := writeRow(cells, writer); err != nil {
			return err
		}
	}
	return nil
}

// FormatSessions formats session summaries as a table.
func (f *TableFormatter) FormatSessions(sessions []journal.SessionSummary, writer io.Writer) error {
	if len(sessions) == 0 {
		return nil
	}
	columns := make([]TableColumn, 0, 4)
	for _, name := range []string{"Session", "Events", "First", "Last"} {
		width := f.config.ColumnWidths[name]
		if width == 0 {
			width = f.config.ColumnWidths["Date"]
		}
		columns = append(columns, TableColumn{Name: name, Width: width, Alignment: f.config.ColumnAlignments[name]})
	}
	if err := f.writeHeader(columns, writer); err != nil {
		return err
	}
	for _, s := range sessions {
		values := []string{s.Session, strconv.Itoa(s.Events), displayTime(s.First), displayTime(s.Last)}
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatString(values[i], col.Width, col.Alignment)
		}
		if err := writeRow(cells, writer); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the header and separator rows when headers are enabled.
func (f *TableFormatter) writeHeader(columns []TableColumn, writer io.Writer) error {
	if !f.config.ShowHeaders {
		return nil
	}
	names := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, col := range columns {
		names[i] = formatString(col.Name, col.Width, "left")
		separators[i] = strings.Repeat("-", col.Width)
	}
	for _, row := range [][]string{names, separators} {
		line := strings.TrimRight(strings.Join(row, "  "), " ")
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, line, colors.Reset); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(cells []string, writer io.Writer) error {
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// formatString pads s to width using alignment, truncating with "..." when
// it does not fit.
func formatString(s string, width int, alignment string) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 3 {
			return string(runes[:width])
		}
		return string(runes[:width-3]) + "..."
	}
	pad := width - len(runes)
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
