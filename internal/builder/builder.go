// Package builder runs the publication list pipeline: fetch a library once,
// mangle author lists, classify, compute metrics and render LaTeX.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matsen/cvpubs/internal/author"
	"github.com/matsen/cvpubs/internal/classify"
	"github.com/matsen/cvpubs/internal/config"
	"github.com/matsen/cvpubs/internal/export"
	"github.com/matsen/cvpubs/internal/metrics"
	"github.com/matsen/cvpubs/internal/record"
	"github.com/rs/zerolog"
)

// ErrNoAuthors is returned when a fetched record has an empty author list.
var ErrNoAuthors = errors.New("record has no authors")

// Source supplies the raw records of a library.
type Source interface {
	Fetch(ctx context.Context, library string) ([]record.Record, error)
}

// Builder produces a publication list for one configuration. Records are
// fetched and mangled at most once; later calls reuse the cached set.
// A Builder is not safe for concurrent use.
type Builder struct {
	cfg       config.Config
	source    Source
	canon     *author.Canonicalizer
	overrides *classify.Overrides
	renderer  *export.Renderer
	logger    zerolog.Logger

	fetched bool
	records []*record.Record
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithClock sets the clock used for the "As of" date.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.renderer.Now = now
	}
}

// WithAbbreviator replaces the venue abbreviation lookup.
func WithAbbreviator(fn func(string) (string, error)) Option {
	return func(b *Builder) {
		b.renderer.Abbreviate = fn
	}
}

// New creates a Builder. cfg should already be defaulted and validated.
func New(cfg config.Config, source Source, opts ...Option) *Builder {
	b := &Builder{
		cfg:       cfg,
		source:    source,
		canon:     author.NewCanonicalizer(cfg.Name, cfg.NameVariations),
		overrides: cfg.TierOverrides(),
		renderer:  export.NewRenderer(cfg.Name),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Retrieve fetches the library and mangles every author list. Only the
// first successful call does any work.
func (b *Builder) Retrieve(ctx context.Context) error {
	if b.fetched {
		return nil
	}

	raw, err := b.source.Fetch(ctx, b.cfg.Library)
	if err != nil {
		return fmt.Errorf("fetching library %s: %w", b.cfg.Library, err)
	}

	records := make([]*record.Record, len(raw))
	for i := range raw {
		rec := &raw[i]
		if len(rec.Author) == 0 {
			return fmt.Errorf("%w: %s", ErrNoAuthors, rec.Bibcode)
		}
		rec.Author = author.Mangle(rec.Author, b.canon, b.cfg.NAuthors)
		records[i] = rec
	}

	b.records = records
	b.fetched = true
	b.logger.Info().
		Str("library", b.cfg.Library).
		Int("records", len(records)).
		Msg("retrieved library")
	return nil
}

// Records returns the mangled records in source order.
func (b *Builder) Records(ctx context.Context) ([]*record.Record, error) {
	if err := b.Retrieve(ctx); err != nil {
		return nil, err
	}
	return b.records, nil
}

// Metrics returns the paper count, citation total and h-index.
func (b *Builder) Metrics(ctx context.Context) (metrics.Summary, error) {
	if err := b.Retrieve(ctx); err != nil {
		return metrics.Summary{}, err
	}
	return metrics.Compute(b.records), nil
}

// Classify sorts the records into tiers, newest first within each tier.
func (b *Builder) Classify(ctx context.Context) (classify.Tiers, error) {
	if err := b.Retrieve(ctx); err != nil {
		return classify.Tiers{}, err
	}

	tiers := classify.Classify(b.records, b.cfg.Name, b.overrides)
	for _, t := range classify.AllTiers {
		b.logger.Debug().Str("tier", t.String()).Int("records", len(tiers.Get(t))).Msg("classified")
	}
	return tiers, nil
}

// Render produces the complete LaTeX publications section.
func (b *Builder) Render(ctx context.Context) (string, error) {
	tiers, err := b.Classify(ctx)
	if err != nil {
		return "", err
	}
	summary, err := b.Metrics(ctx)
	if err != nil {
		return "", err
	}
	return b.renderer.Render(&tiers, summary)
}

// Write renders the document and writes it to the configured output path
// in a single write, replacing any existing file. Nothing is written if
// rendering fails.
func (b *Builder) Write(ctx context.Context) (string, error) {
	doc, err := b.Render(ctx)
	if err != nil {
		return "", err
	}

	path := b.cfg.Output
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	b.logger.Info().Str("path", path).Int("bytes", len(doc)).Msg("wrote publication list")
	return path, nil
}
