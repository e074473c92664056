package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/nao1215/ycscrape/internal/model"
)

// Header is the fixed first row of the CSV export.
var Header = []string{
	"Company Name",
	"Blurb",
	"Company Link",
	"Founders",
	"LinkedIn Links",
	"Founded",
	"Team Size",
	"Location",
}

// CompanyRow returns the cells of one company in Header order.
// Absent fields become empty cells.
func CompanyRow(c model.Company) []string {
	return []string{
		c.Name(),
		c.Blurb(),
		c.DetailURL(),
		FormatSequence(c.Founders()),
		FormatSequence(c.LinkedInURLs()),
		c.Founded().String(),
		c.TeamSize().String(),
		c.Location().String(),
	}
}

// CSVWriter writes the company table as CSV. Records end in CRLF while
// line breaks inside a quoted cell are written unchanged.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header and one row per company in run order.
func (w *CSVWriter) Write(run *model.Run) (int, error) {
	cw := &countingWriter{w: w.output}
	var line bytes.Buffer
	out := csv.NewWriter(&line)

	// encoding/csv with UseCRLF also rewrites "\n" inside cells, so each
	// record is encoded with "\n" and only its terminator is replaced.
	writeRecord := func(record []string) error {
		line.Reset()
		if err := out.Write(record); err != nil {
			return err
		}
		out.Flush()
		if err := out.Error(); err != nil {
			return err
		}
		line.Truncate(line.Len() - 1)
		line.WriteString("\r\n")
		_, err := line.WriteTo(cw)
		return err
	}

	if err := writeRecord(Header); err != nil {
		return cw.n, err
	}
	for _, c := range run.Companies {
		if err := writeRecord(CompanyRow(c)); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}
