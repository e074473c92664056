package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/ycscrape/internal/config"
	"github.com/nao1215/ycscrape/internal/model"
	"github.com/nao1215/ycscrape/internal/report"
)

// ListingParser reads the company entries of a listing snapshot.
type ListingParser interface {
	ParseFile(path string) ([]model.Entry, error)
}

// PageFetcher downloads one detail page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*model.Page, error)
}

// DetailParser extracts the detail fields of a company page.
type DetailParser interface {
	ParseDetail(r io.Reader) (model.Details, error)
}

// Archiver stores a finished run and returns its id.
type Archiver interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// LoadListingStep parses the listing snapshot into run.Entries.
type LoadListingStep struct {
	parser ListingParser
	out    io.Writer
	logger *slog.Logger
}

// LoadListingStepOption configures a LoadListingStep.
type LoadListingStepOption func(*LoadListingStep)

// WithListingLogger sets a custom logger for the listing step.
func WithListingLogger(logger *slog.Logger) LoadListingStepOption {
	return func(s *LoadListingStep) {
		s.logger = logger
	}
}

// NewLoadListingStep creates the listing step. Progress is printed to out.
func NewLoadListingStep(parser ListingParser, out io.Writer, opts ...LoadListingStepOption) *LoadListingStep {
	s := &LoadListingStep{
		parser: parser,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadListingStep) Name() string {
	return "load_listing"
}

// Do executes the listing step.
func (s *LoadListingStep) Do(_ context.Context, run *model.Run) error {
	entries, err := s.parser.ParseFile(run.SnapshotPath)
	if err != nil {
		return err
	}
	run.Entries = entries

	s.logger.Debug("listing parsed", "snapshot", run.SnapshotPath, "entries", len(entries))
	if len(entries) > 0 {
		fmt.Fprintf(s.out, "Found %d companies.\n", len(entries))
	}
	return nil
}

// FetchDetailsStep fetches the detail page of every entry, in listing
// order, and appends one company per entry to the run.
type FetchDetailsStep struct {
	fetcher PageFetcher
	parser  DetailParser
	origin  string
	lenient bool
	out     io.Writer
	logger  *slog.Logger
}

// FetchDetailsStepOption configures a FetchDetailsStep.
type FetchDetailsStepOption func(*FetchDetailsStep)

// WithOrigin sets the origin prepended to each entry href.
func WithOrigin(origin string) FetchDetailsStepOption {
	return func(s *FetchDetailsStep) {
		if origin != "" {
			s.origin = origin
		}
	}
}

// WithLenient keeps companies whose detail page has none of the labelled
// fields instead of failing the run.
func WithLenient(lenient bool) FetchDetailsStepOption {
	return func(s *FetchDetailsStep) {
		s.lenient = lenient
	}
}

// WithDetailsLogger sets a custom logger for the detail step.
func WithDetailsLogger(logger *slog.Logger) FetchDetailsStepOption {
	return func(s *FetchDetailsStep) {
		s.logger = logger
	}
}

// NewFetchDetailsStep creates the detail step. Progress is printed to out.
func NewFetchDetailsStep(fetcher PageFetcher, parser DetailParser, out io.Writer, opts ...FetchDetailsStepOption) *FetchDetailsStep {
	s := &FetchDetailsStep{
		fetcher: fetcher,
		parser:  parser,
		origin:  config.DefaultBaseURL,
		out:     out,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FetchDetailsStep) Name() string {
	return "fetch_details"
}

// Do executes the detail step. The first fetch or parse error stops it.
func (s *FetchDetailsStep) Do(ctx context.Context, run *model.Run) error {
	for _, entry := range run.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		detailURL := entry.DetailURL(s.origin)
		page, err := s.fetcher.Fetch(ctx, detailURL)
		if err != nil {
			return fmt.Errorf("company %q: %w", entry.Name, err)
		}

		details, err := s.parser.ParseDetail(bytes.NewReader(page.Raw))
		if err != nil {
			return fmt.Errorf("company %q: %w", entry.Name, err)
		}

		if details.Empty() {
			if !s.lenient {
				return fmt.Errorf("%w: %s", ErrIncompleteDetails, detailURL)
			}
			s.logger.Warn("detail page has no labelled fields", "url", detailURL)
		}

		company := model.NewCompany(entry, detailURL, details)
		run.AddCompany(company)
		if page.Hash != "" {
			run.PageHashes[detailURL] = page.Hash
		}

		fmt.Fprintf(s.out, "Company Link: %s, Founded: %s, Team Size: %s, Location: %s\n",
			company.DetailURL(),
			company.Founded(),
			company.TeamSize(),
			company.Location(),
		)
	}
	return nil
}

// ExportStep writes the run to <dir>/yc_climate_<industry>_companies.<ext>.
type ExportStep struct {
	dir    string
	format string
	out    io.Writer
	logger *slog.Logger
}

// ExportStepOption configures an ExportStep.
type ExportStepOption func(*ExportStep)

// WithExportLogger sets a custom logger for the export step.
func WithExportLogger(logger *slog.Logger) ExportStepOption {
	return func(s *ExportStep) {
		s.logger = logger
	}
}

// NewExportStep creates the export step for dir and a format name from
// config.Formats. The completion message is printed to out.
func NewExportStep(dir, format string, out io.Writer, opts ...ExportStepOption) *ExportStep {
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	s := &ExportStep{
		dir:    dir,
		format: format,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do renders the whole run in memory and only then creates the file, so a
// rendering failure leaves no file behind.
func (s *ExportStep) Do(_ context.Context, run *model.Run) error {
	if run.FinishedAt.IsZero() {
		run.Finish()
	}

	path := filepath.Join(s.dir, report.OutputFileName(run.Industry, s.format))
	run.OutputPath = path

	var buf bytes.Buffer
	w, err := report.NewWriter(s.format, &buf)
	if err != nil {
		return err
	}
	if _, err := w.Write(run); err != nil {
		return fmt.Errorf("failed to render %s: %w", s.format, err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path is built from the output dir flag
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	s.logger.Debug("run exported", "path", path, "format", s.format, "companies", run.CompanyCount())
	fmt.Fprintf(s.out, "Data has been successfully scraped and saved to %s\n", path)
	return nil
}

// ArchiveStep stores the run in the archive database.
type ArchiveStep struct {
	archiver Archiver
	logger   *slog.Logger
}

// NewArchiveStep creates the archive step.
func NewArchiveStep(archiver Archiver, logger *slog.Logger) *ArchiveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveStep{
		archiver: archiver,
		logger:   logger,
	}
}

// Name returns the step name.
func (s *ArchiveStep) Name() string {
	return "archive"
}

// Do executes the archive step.
func (s *ArchiveStep) Do(ctx context.Context, run *model.Run) error {
	id, err := s.archiver.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	run.ArchiveID = id
	s.logger.Debug("run archived", "id", id, "companies", run.CompanyCount())
	return nil
}
