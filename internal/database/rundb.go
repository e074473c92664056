package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/ycscrape/internal/model"
)

// FileName is the name of the archive file inside the database directory.
const FileName = "ycscrape.db"

// RunDB stores scrape runs and their companies in SQLite.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunMetadata describes an archived run without its companies.
type RunMetadata struct {
	ID           int64
	SourceURL    string
	Industry     string
	SnapshotPath string
	OutputPath   string
	StartedAt    time.Time
	FinishedAt   time.Time
	CompanyCount int
}

// Open opens or creates a RunDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the path of the database file.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_url TEXT NOT NULL,
		industry TEXT NOT NULL,
		snapshot_path TEXT,
		output_path TEXT,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		company_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_industry ON runs(industry);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Optional fields are NULL when the label was not on the detail page.
	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		blurb TEXT NOT NULL,
		detail_url TEXT NOT NULL,
		founders_json TEXT NOT NULL,
		linkedin_json TEXT NOT NULL,
		founded TEXT,
		team_size TEXT,
		location TEXT,
		page_hash TEXT,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_companies_run ON companies(run_id);
	CREATE INDEX IF NOT EXISTS idx_companies_url ON companies(detail_url);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a run and all of its companies in one transaction and
// returns the new run id.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // no-op after commit
	}()

	var finished sql.NullString
	if !run.FinishedAt.IsZero() {
		finished = sql.NullString{String: formatTimestamp(run.FinishedAt), Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (source_url, industry, snapshot_path, output_path, started_at, finished_at, company_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.SourceURL,
		run.Industry,
		run.SnapshotPath,
		run.OutputPath,
		formatTimestamp(run.StartedAt),
		finished,
		run.CompanyCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO companies (run_id, position, name, blurb, detail_url, founders_json, linkedin_json, founded, team_size, location, page_hash)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare company insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range run.Companies {
		founders, err := encodeList(c.Founders())
		if err != nil {
			return 0, fmt.Errorf("failed to serialize founders: %w", err)
		}
		linkedIn, err := encodeList(c.LinkedInURLs())
		if err != nil {
			return 0, fmt.Errorf("failed to serialize linkedin links: %w", err)
		}

		var hash sql.NullString
		if h, ok := run.PageHashes[c.DetailURL()]; ok {
			hash = sql.NullString{String: h, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			id,
			i,
			c.Name(),
			c.Blurb(),
			c.DetailURL(),
			founders,
			linkedIn,
			toNull(c.Founded()),
			toNull(c.TeamSize()),
			toNull(c.Location()),
			hash,
		); err != nil {
			return 0, fmt.Errorf("failed to insert company %q: %w", c.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns archived runs, newest first.
// An empty industry lists runs of every industry.
func (rdb *RunDB) ListRuns(ctx context.Context, industry string) ([]RunMetadata, error) {
	return rdb.queryRuns(ctx, industry, -1)
}

// LatestRuns returns at most n runs of an industry, newest first.
func (rdb *RunDB) LatestRuns(ctx context.Context, industry string, n int) ([]RunMetadata, error) {
	if n <= 0 {
		return nil, nil
	}
	return rdb.queryRuns(ctx, industry, n)
}

func (rdb *RunDB) queryRuns(ctx context.Context, industry string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, source_url, industry, snapshot_path, output_path, started_at, finished_at, company_count
	FROM runs
	WHERE (? = '' OR industry = ?)
	ORDER BY started_at DESC, id DESC
	LIMIT ?
	`

	rows, err := rdb.db.QueryContext(ctx, query, industry, industry, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		meta, err := scanRunMetadata(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// GetRun retrieves an archived run with its companies in listing order.
// It returns nil, nil when no run has the given id.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*model.Run, error) {
	row := rdb.db.QueryRowContext(ctx, `
	SELECT id, source_url, industry, snapshot_path, output_path, started_at, finished_at, company_count
	FROM runs WHERE id = ?
	`, id)

	meta, err := scanRunMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		ArchiveID:    meta.ID,
		SourceURL:    meta.SourceURL,
		Industry:     meta.Industry,
		SnapshotPath: meta.SnapshotPath,
		OutputPath:   meta.OutputPath,
		StartedAt:    meta.StartedAt,
		FinishedAt:   meta.FinishedAt,
		Companies:    []model.Company{},
		PageHashes:   make(map[string]string),
	}

	rows, err := rdb.db.QueryContext(ctx, `
	SELECT position, name, blurb, detail_url, founders_json, linkedin_json, founded, team_size, location, page_hash
	FROM companies WHERE run_id = ?
	ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry                      model.Entry
			detailURL                  string
			foundersJSON, linkedInJSON string
			founded, teamSize, loc     sql.NullString
			hash                       sql.NullString
		)
		if err := rows.Scan(
			&entry.Position,
			&entry.Name,
			&entry.Blurb,
			&detailURL,
			&foundersJSON,
			&linkedInJSON,
			&founded,
			&teamSize,
			&loc,
			&hash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}

		var d model.Details
		if err := json.Unmarshal([]byte(foundersJSON), &d.Founders); err != nil {
			return nil, fmt.Errorf("failed to parse founders: %w", err)
		}
		if err := json.Unmarshal([]byte(linkedInJSON), &d.LinkedInURLs); err != nil {
			return nil, fmt.Errorf("failed to parse linkedin links: %w", err)
		}
		d.Founded = fromNull(founded)
		d.TeamSize = fromNull(teamSize)
		d.Location = fromNull(loc)

		run.AddCompany(model.NewCompany(entry, detailURL, d))
		if hash.Valid {
			run.PageHashes[detailURL] = hash.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunMetadata(row rowScanner) (RunMetadata, error) {
	var (
		meta             RunMetadata
		snapshot, output sql.NullString
		startedAt        string
		finishedAt       sql.NullString
	)
	if err := row.Scan(
		&meta.ID,
		&meta.SourceURL,
		&meta.Industry,
		&snapshot,
		&output,
		&startedAt,
		&finishedAt,
		&meta.CompanyCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("failed to scan run: %w", err)
	}
	meta.SnapshotPath = snapshot.String
	meta.OutputPath = output.String
	meta.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		meta.FinishedAt = parseTimestamp(finishedAt.String)
	}
	return meta, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toNull(o model.OptionalText) sql.NullString {
	return sql.NullString{String: o.Value, Valid: o.Valid}
}

func fromNull(n sql.NullString) model.OptionalText {
	if !n.Valid {
		return model.None()
	}
	return model.Some(n.String)
}

// timestampFormats contains the timestamp formats that SQLite may return.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// storedTimestampLayout keeps a fixed width so started_at sorts as text.
const storedTimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(storedTimestampLayout)
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
