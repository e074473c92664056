package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/ycscrape/internal/model"
)

// defaultBlurbWidth truncates blurbs so terminal rows stay on one line.
const defaultBlurbWidth = 48

// TableWriter renders the companies of a run as a terminal table.
type TableWriter struct {
	baseWriter
	blurbWidth int
	style      table.Style
}

// TableWriterOption configures a TableWriter.
type TableWriterOption func(*TableWriter)

// WithBlurbWidth sets the maximum blurb width; 0 disables truncation.
func WithBlurbWidth(width int) TableWriterOption {
	return func(w *TableWriter) {
		w.blurbWidth = width
	}
}

// WithStyle sets the go-pretty table style.
func WithStyle(style table.Style) TableWriterOption {
	return func(w *TableWriter) {
		w.style = style
	}
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...TableWriterOption) *TableWriter {
	w := &TableWriter{
		baseWriter: newBaseWriter(output),
		blurbWidth: defaultBlurbWidth,
		style:      table.StyleRounded,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders one row per company followed by a total.
func (w *TableWriter) Write(run *model.Run) (int, error) {
	t := w.newTable()
	t.AppendHeader(table.Row{"#", "Company", "Blurb", "Founders", "Founded", "Team Size", "Location"})
	for i, c := range run.Companies {
		t.AppendRow(table.Row{
			i + 1,
			c.Name(),
			truncate(c.Blurb(), w.blurbWidth),
			strings.Join(c.Founders(), ", "),
			c.Founded().String(),
			c.TeamSize().String(),
			c.Location().String(),
		})
	}
	t.AppendFooter(table.Row{"", "Total", run.CompanyCount()})
	return io.WriteString(w.output, t.Render()+"\n")
}

// RunSummary is one line of the archive listing.
type RunSummary struct {
	ID        int64
	Industry  string
	SourceURL string
	StartedAt string
	Companies int
	Output    string
}

// WriteRuns renders archived runs, newest first as given.
func (w *TableWriter) WriteRuns(runs []RunSummary) (int, error) {
	t := w.newTable()
	t.AppendHeader(table.Row{"ID", "Industry", "Scraped", "Companies", "Listing", "Output"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID, r.Industry, r.StartedAt, r.Companies, r.SourceURL, r.Output})
	}
	return io.WriteString(w.output, t.Render()+"\n")
}

// WriteDiff renders companies added and removed between two runs.
func (w *TableWriter) WriteDiff(added, removed []model.Company) (int, error) {
	t := w.newTable()
	t.AppendHeader(table.Row{"Change", "Company", "Link"})
	for _, c := range added {
		t.AppendRow(table.Row{"+", c.Name(), c.DetailURL()})
	}
	for _, c := range removed {
		t.AppendRow(table.Row{"-", c.Name(), c.DetailURL()})
	}
	t.AppendFooter(table.Row{"", "Added / Removed", formatCounts(len(added), len(removed))})
	return io.WriteString(w.output, t.Render()+"\n")
}

func (w *TableWriter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(w.style)
	return t
}

func formatCounts(added, removed int) string {
	return fmt.Sprintf("+%d / -%d", added, removed)
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
