package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/ycscrape/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newCompany(name, slug string, d model.Details) model.Company {
	return model.NewCompany(
		model.Entry{Name: name, Blurb: name + " blurb", Href: "/companies/" + slug},
		"https://www.ycombinator.com/companies/"+slug,
		d,
	)
}

func sampleRun(industry string, started time.Time, companies ...model.Company) *model.Run {
	run := model.NewRun("https://www.ycombinator.com/companies?industry="+industry, industry, "listing.html")
	run.StartedAt = started
	run.FinishedAt = started.Add(3 * time.Second)
	run.OutputPath = "yc_climate_" + industry + "_companies.csv"
	for _, c := range companies {
		run.AddCompany(c)
	}
	return run
}

var companyComparer = cmp.Comparer(func(a, b model.Company) bool {
	return cmp.Equal(a.Details(), b.Details()) &&
		a.Name() == b.Name() &&
		a.Blurb() == b.Blurb() &&
		a.DetailURL() == b.DetailURL()
})

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		require.NoError(t, err)
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		require.Error(t, err)
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		require.NoError(t, err)
		require.NoError(t, db.Close())
	})
}

func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	t.Run("round trips companies and optional fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		run := sampleRun("Energy", started,
			newCompany("Acme", "acme", model.Details{
				Founders:     []string{"Alice", "Bob"},
				LinkedInURLs: []string{"https://www.linkedin.com/in/alice"},
				Founded:      model.Some("2021"),
				TeamSize:     model.Some("12"),
				Location:     model.Some("San Francisco, CA"),
			}),
			newCompany("Helio Grid", "helio-grid", model.Details{
				Founded: model.Some(""),
			}),
		)
		run.PageHashes["https://www.ycombinator.com/companies/acme"] = "abc123"

		id, err := db.SaveRun(ctx, run)
		require.NoError(t, err)
		require.Positive(t, id)

		got, err := db.GetRun(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)

		if got.ArchiveID != id {
			t.Errorf("ArchiveID = %d, want %d", got.ArchiveID, id)
		}
		if !got.StartedAt.Equal(started) {
			t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
		}
		if got.Duration() != 3*time.Second {
			t.Errorf("Duration() = %v", got.Duration())
		}
		if diff := cmp.Diff(run.Companies, got.Companies, companyComparer); diff != "" {
			t.Errorf("companies mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(map[string]string{"https://www.ycombinator.com/companies/acme": "abc123"}, got.PageHashes); diff != "" {
			t.Errorf("page hashes mismatch (-want +got):\n%s", diff)
		}

		helio := got.Companies[1]
		if !helio.Founded().Valid || helio.Founded().Value != "" {
			t.Errorf("present empty value not preserved: %+v", helio.Founded())
		}
		if helio.Location().Valid {
			t.Errorf("absent value came back present: %+v", helio.Location())
		}
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		got, err := db.GetRun(context.Background(), 42)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("run without companies", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.SaveRun(ctx, sampleRun("Fintech", time.Now()))
		require.NoError(t, err)

		got, err := db.GetRun(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, 0, got.CompanyCount())
	})
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	acme := newCompany("Acme", "acme", model.Details{})
	helio := newCompany("Helio Grid", "helio-grid", model.Details{})

	for _, run := range []*model.Run{
		sampleRun("Energy", base, acme),
		sampleRun("Fintech", base.Add(time.Hour)),
		sampleRun("Energy", base.Add(2*time.Hour), acme, helio),
	} {
		_, err := db.SaveRun(ctx, run)
		require.NoError(t, err)
	}

	t.Run("all industries newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListRuns(ctx, "")
		require.NoError(t, err)

		var got []string
		for _, r := range runs {
			got = append(got, r.Industry)
		}
		if diff := cmp.Diff([]string{"Energy", "Fintech", "Energy"}, got); diff != "" {
			t.Errorf("industries mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, 2, runs[0].CompanyCount)
	})

	t.Run("filtered by industry", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListRuns(ctx, "Fintech")
		require.NoError(t, err)
		require.Len(t, runs, 1)
		require.Equal(t, "yc_climate_Fintech_companies.csv", runs[0].OutputPath)
	})

	t.Run("latest two", func(t *testing.T) {
		t.Parallel()

		runs, err := db.LatestRuns(ctx, "Energy", 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		require.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	})

	t.Run("non-positive limit", func(t *testing.T) {
		t.Parallel()

		runs, err := db.LatestRuns(ctx, "Energy", 0)
		require.NoError(t, err)
		require.Empty(t, runs)
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()

	acme := newCompany("Acme", "acme", model.Details{})
	helio := newCompany("Helio Grid", "helio-grid", model.Details{})
	cafe := newCompany("Café Carbon", "cafe-carbon", model.Details{})

	older := sampleRun("Energy", time.Now(), acme, helio)
	newer := sampleRun("Energy", time.Now(), helio, cafe)

	tests := []struct {
		name        string
		older       *model.Run
		newer       *model.Run
		wantAdded   []string
		wantRemoved []string
	}{
		{"changes", older, newer, []string{"Café Carbon"}, []string{"Acme"}},
		{"identical", older, older, nil, nil},
		{"no older run", nil, newer, []string{"Helio Grid", "Café Carbon"}, nil},
		{"no newer run", older, nil, nil, []string{"Acme", "Helio Grid"}},
	}

	names := func(cs []model.Company) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Name())
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			added, removed := Diff(tt.older, tt.newer)
			if diff := cmp.Diff(tt.wantAdded, names(added)); diff != "" {
				t.Errorf("added mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRemoved, names(removed)); diff != "" {
				t.Errorf("removed mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	for _, s := range []string{
		"2026-02-03T04:05:06Z",
		"2026-02-03 04:05:06",
		"2026-02-03T04:05:06",
	} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if got := parseTimestamp("not a time"); !got.IsZero() {
		t.Errorf("parseTimestamp(garbage) = %v, want zero", got)
	}
}
