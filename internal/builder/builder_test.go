package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/cvpubs/internal/classify"
	"github.com/matsen/cvpubs/internal/config"
	"github.com/matsen/cvpubs/internal/metrics"
	"github.com/matsen/cvpubs/internal/record"
	"github.com/matsen/cvpubs/internal/venue"
)

const me = "Crenshaw J. F."

// fakeSource returns a fresh copy of records on every call and counts calls.
type fakeSource struct {
	records []record.Record
	err     error
	calls   int
	library string
}

func (f *fakeSource) Fetch(ctx context.Context, library string) ([]record.Record, error) {
	f.calls++
	f.library = library
	if f.err != nil {
		return nil, f.err
	}
	out := make([]record.Record, len(f.records))
	for i, r := range f.records {
		r.Author = append([]string(nil), r.Author...)
		out[i] = r
	}
	return out, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{
		Library:        "lib123",
		Name:           me,
		NameVariations: []string{"Crenshaw, John Franklin", "Crenshaw, J. F."},
		Output:         filepath.Join(t.TempDir(), "sections", "publications.tex"),
	}
	cfg.ApplyDefaults()
	return cfg
}

func testRecords() []record.Record {
	return []record.Record{
		{
			Title:         []string{"First-author paper"},
			Author:        []string{"Crenshaw, John Franklin", "Connolly, Andrew J."},
			Year:          2023,
			Pub:           "The Astronomical Journal",
			Volume:        "165",
			Page:          []string{"10"},
			DOI:           []string{"10.3847/aj.1"},
			Bibcode:       "2023AJ....165...10C",
			CitationCount: 10,
			PubDate:       "2023-01-00",
		},
		{
			Title:         []string{"Second-author paper"},
			Author:        []string{"Smith, John", "Crenshaw, J. F.", "Jones, Amy", "Lee, Bo", "Kim, Chan"},
			Year:          2024,
			Pub:           "arXiv e-prints",
			Page:          []string{"arXiv:2401.00001"},
			Bibcode:       "2024arXiv240100001S",
			CitationCount: 8,
			PubDate:       "2024-01-00",
		},
		{
			Title:         []string{"Third-author paper"},
			Author:        []string{"Jones, Amy", "Lee, Bo", "Crenshaw, J. F.", "Kim, Chan", "Park, Dae"},
			Year:          2022,
			Pub:           "Monthly Notices of the Royal Astronomical Society",
			Volume:        "512",
			Page:          []string{"1"},
			Bibcode:       "2022MNRAS.512....1J",
			CitationCount: 5,
			PubDate:       "2022-05-00",
		},
		{
			Title:         []string{"Collaboration paper"},
			Author:        []string{"The LSST Dark Energy Science Collaboration", "Abolfathi, B.", "Crenshaw, J. F."},
			Year:          2021,
			Pub:           "The Astrophysical Journal Supplement Series",
			Volume:        "253",
			Page:          []string{"31"},
			Bibcode:       "2021ApJS..253...31L",
			CitationCount: 4,
			PubDate:       "2021-03-00",
		},
		{
			Title:         []string{"Truncated-out paper"},
			Author:        []string{"Ivezić, Željko", "Kahn, Steven M.", "Tyson, J. Anthony", "Abel, Bob", "Crenshaw, J. F."},
			Year:          2019,
			Pub:           "The Astrophysical Journal",
			Volume:        "873",
			Page:          []string{"111"},
			DOI:           []string{"10.3847/1538-4357/ab042c"},
			Bibcode:       "2019ApJ...873..111I",
			CitationCount: 3,
			PubDate:       "2019-03-00",
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
}

func TestRetrieve_FetchesOnce(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	b := New(testConfig(t), src)
	ctx := context.Background()

	if err := b.Retrieve(ctx); err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	first, _ := b.Records(ctx)
	authorsBefore := append([]string(nil), first[0].Author...)

	if _, err := b.Metrics(ctx); err != nil {
		t.Fatalf("Metrics() error = %v", err)
	}
	if _, err := b.Classify(ctx); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if _, err := b.Render(ctx); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := b.Retrieve(ctx); err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if src.library != "lib123" {
		t.Errorf("source library = %q, want lib123", src.library)
	}

	// A second Retrieve must not mangle again.
	second, _ := b.Records(ctx)
	if diff := cmp.Diff(authorsBefore, second[0].Author); diff != "" {
		t.Errorf("authors changed after repeated calls (-want +got):\n%s", diff)
	}
}

func TestRetrieve_Mangles(t *testing.T) {
	b := New(testConfig(t), &fakeSource{records: testRecords()})

	records, err := b.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	want := [][]string{
		{me, "Connolly A. J.", "et al."},
		{"Smith J.", me, "Jones A.", "Lee B.", "et al."},
		{"Jones A.", "Lee B.", me, "Kim C.", "et al."},
		{"The LSST Dark Energy Science Collaboration", "including " + me},
		{"Ivezić Ž.", "Kahn S. M.", "Tyson J. A.", "et al.", "including " + me},
	}
	for i, r := range records {
		if diff := cmp.Diff(want[i], r.Author); diff != "" {
			t.Errorf("record %d authors mismatch (-want +got):\n%s", i, diff)
		}
		if len(r.Author) > 4+2 {
			t.Errorf("record %d has %d authors, limit 6", i, len(r.Author))
		}
	}
}

func TestRetrieve_FetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	src := &fakeSource{err: fetchErr}
	b := New(testConfig(t), src)

	_, err := b.Metrics(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Metrics() error = %v, want wrapped fetch error", err)
	}

	// A failed fetch is not cached.
	src.err = nil
	src.records = testRecords()
	if _, err := b.Metrics(context.Background()); err != nil {
		t.Fatalf("Metrics() after recovery error = %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestRetrieve_NoAuthors(t *testing.T) {
	src := &fakeSource{records: []record.Record{{Bibcode: "2020empty", Author: nil}}}
	b := New(testConfig(t), src)

	err := b.Retrieve(context.Background())
	if !errors.Is(err, ErrNoAuthors) {
		t.Fatalf("Retrieve() error = %v, want ErrNoAuthors", err)
	}
	if !strings.Contains(err.Error(), "2020empty") {
		t.Errorf("error should name the bibcode: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	b := New(testConfig(t), &fakeSource{records: testRecords()})

	got, err := b.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics() error = %v", err)
	}
	want := metrics.Summary{Papers: 5, Citations: 30, HIndex: 4}
	if got != want {
		t.Errorf("Metrics() = %+v, want %+v", got, want)
	}
}

func TestClassify(t *testing.T) {
	cfg := testConfig(t)
	cfg.Overrides.Secondary = []string{"10.3847/AJ.1"} // forces the first-author paper down

	b := New(cfg, &fakeSource{records: testRecords()})
	tiers, err := b.Classify(context.Background())
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	want := map[classify.Tier][]string{
		classify.Primary:   {"2024arXiv240100001S"},
		classify.Secondary: {"2023AJ....165...10C", "2022MNRAS.512....1J", "2019ApJ...873..111I"},
		classify.Tertiary:  {"2021ApJS..253...31L"},
	}
	for _, tier := range classify.AllTiers {
		var got []string
		for _, r := range tiers.Get(tier) {
			got = append(got, r.Bibcode)
		}
		if diff := cmp.Diff(want[tier], got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tier, diff)
		}
	}
	if tiers.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tiers.Len())
	}
}

func TestWrite(t *testing.T) {
	cfg := testConfig(t)
	b := New(cfg, &fakeSource{records: testRecords()}, WithClock(fixedClock))

	path, err := b.Write(context.Background())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != cfg.Output {
		t.Errorf("Write() path = %q, want %q", path, cfg.Output)
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc := string(data)

	checks := []string{
		"\\section{Publications}\n\n",
		"As of October 2026, I have (co-)authored 5 papers, with a total of 30 citations and an h-index of 4.",
		"\\textbf{First and Second Author:}\n\\begin{etaremune}\n",
		"\\textbf{Crenshaw J. F.}, Connolly A. J., et al. (2023) \nAJ 165 10 \n\n",
		"Smith J., \\textbf{Crenshaw J. F.}, Jones A., Lee B., et al. (2024) \narXiv:2401.00001 \n\n",
		"\\textbf{Co-Author with Major Contributions:}\n",
		"Jones A., Lee B., \\textbf{Crenshaw J. F.}, Kim C., et al. (2022) \nMNRAS 512 1 \n\n",
		"Ivezić Ž., Kahn S. M., Tyson J. A., et al., including \\textbf{Crenshaw J. F.} (2019) \nApJ 873 111 \n\n",
		"\\textbf{Other Co-Author Papers:}\n",
		"The LSST Dark Energy Science Collaboration, including \\textbf{Crenshaw J. F.} (2021) \nApJS 253 31 \n\n",
	}
	for _, c := range checks {
		if !strings.Contains(doc, c) {
			t.Errorf("output missing %q\n--- output ---\n%s", c, doc)
		}
	}

	// Newest primary paper comes first.
	if strings.Index(doc, "Second-author paper") > strings.Index(doc, "First-author paper") {
		t.Errorf("primary tier not sorted newest first:\n%s", doc)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Output, []byte(strings.Repeat("stale ", 5000)), 0644); err != nil {
		t.Fatal(err)
	}

	b := New(cfg, &fakeSource{}, WithClock(fixedClock))
	if _, err := b.Write(context.Background()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(cfg.Output)
	if strings.Contains(string(data), "stale") {
		t.Error("Write() did not replace existing content")
	}
	if !strings.Contains(string(data), "0 papers, with a total of 0 citations and an h-index of 0") {
		t.Errorf("empty library summary missing:\n%s", data)
	}
	if strings.Contains(string(data), "etaremune") {
		t.Errorf("empty library should have no list environments:\n%s", data)
	}
}

func TestWrite_UnknownVenueWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	records := testRecords()
	records[2].Pub = "Journal of Imaginary Results"

	b := New(cfg, &fakeSource{records: records}, WithClock(fixedClock))
	_, err := b.Write(context.Background())
	if !venue.IsUnknown(err) {
		t.Fatalf("Write() error = %v, want unknown venue", err)
	}
	if _, statErr := os.Stat(cfg.Output); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after failure, stat error = %v", statErr)
	}
}

func TestWithAbbreviator(t *testing.T) {
	cfg := testConfig(t)
	records := testRecords()[:1]
	records[0].Pub = "Journal of Imaginary Results"

	b := New(cfg, &fakeSource{records: records},
		WithClock(fixedClock),
		WithAbbreviator(func(string) (string, error) { return "JIR", nil }))

	doc, err := b.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(doc, "\nJIR 165 10 \n\n") {
		t.Errorf("custom abbreviation not used:\n%s", doc)
	}
}
