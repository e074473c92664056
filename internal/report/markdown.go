package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/ycscrape/internal/model"
)

// timeLayout is used for timestamps in human readable reports.
const timeLayout = "2006-01-02 15:04:05 MST"

// MarkdownWriter outputs runs as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs a run header followed by the company table.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeCompanies(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("YC Companies: " + run.Industry)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Listing", escapeCell(run.SourceURL)},
			{"Snapshot", markdown.Code(run.SnapshotPath)},
			{"Scraped", run.StartedAt.Format(timeLayout)},
			{"Companies", strconv.Itoa(run.CompanyCount())},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCompanies(md *markdown.Markdown, run *model.Run) {
	md.H2("Companies")
	md.PlainText("")

	if run.CompanyCount() == 0 {
		md.PlainText("No companies were found in the listing.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, run.CompanyCount())
	for _, c := range run.Companies {
		rows = append(rows, []string{
			markdown.Link(escapeCell(c.Name()), c.DetailURL()),
			escapeCell(c.Blurb()),
			escapeCell(strings.Join(c.Founders(), ", ")),
			linkedInLinks(c.LinkedInURLs()),
			escapeCell(c.Founded().String()),
			escapeCell(c.TeamSize().String()),
			escapeCell(c.Location().String()),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Company", "Blurb", "Founders", "LinkedIn", "Founded", "Team Size", "Location"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [ycscrape](https://github.com/nao1215/ycscrape)*")
}

func linkedInLinks(urls []string) string {
	links := make([]string, 0, len(urls))
	for i, u := range urls {
		links = append(links, markdown.Link(strconv.Itoa(i+1), u))
	}
	return strings.Join(links, " ")
}

// escapeCell keeps cell text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
