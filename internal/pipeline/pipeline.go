// Package pipeline sequences the three source fetchers, persists each
// partial record, and hands the joined record to the renderer.
package pipeline

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/inodb/vibe-gene/internal/gene"
	"github.com/inodb/vibe-gene/internal/report"
	"github.com/inodb/vibe-gene/internal/store"
)

// DescriptionSource fetches the description partial record for a
// symbol. It never returns an error: the outcome tag says whether the
// record was defaulted.
type DescriptionSource interface {
	FetchDescription(symbol string) (gene.DescriptionRecord, gene.Outcome)
}

// CoordinateSource fetches the coordinate partial record for a symbol.
type CoordinateSource interface {
	FetchCoordinates(symbol string) (gene.CoordinateRecord, gene.Outcome)
}

// ExonSource fetches the exon partial record for a symbol, given the
// coordinates the region query derives from.
type ExonSource interface {
	FetchExons(symbol string, coords gene.CoordinateRecord) (gene.ExonRecord, gene.Outcome)
}

// Runner drives one fetch-normalize-merge run per gene symbol.
type Runner struct {
	descriptions DescriptionSource
	coordinates  CoordinateSource
	exons        ExonSource
	store        *store.Store
	logger       *zap.Logger
}

// NewRunner creates a runner over the three sources and the record
// store.
func NewRunner(d DescriptionSource, c CoordinateSource, e ExonSource, s *store.Store) *Runner {
	return &Runner{
		descriptions: d,
		coordinates:  c,
		exons:        e,
		store:        s,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the logger for run progress messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Run validates the symbol, fetches and persists the three partial
// records in order, joins them, and renders the report to out. Source
// failures are non-fatal and surface as sentinel values in the report;
// validation and storage failures abort the run.
//
// The exon fetch is the only true data dependency (its region query is
// derived from the coordinate fetch), but the full sequence is strictly
// ordered to keep commit ordering deterministic.
func (r *Runner) Run(symbol string, out io.Writer, wrapWidth int) error {
	if !gene.ValidSymbol(symbol) {
		return fmt.Errorf("invalid gene symbol %q: must be one or more word characters", symbol)
	}

	desc, outcome := r.descriptions.FetchDescription(symbol)
	r.observe("description", symbol, outcome)
	if err := r.store.UpsertDescription(desc); err != nil {
		return err
	}

	coords, outcome := r.coordinates.FetchCoordinates(symbol)
	r.observe("coordinates", symbol, outcome)
	if err := r.store.UpsertCoordinates(coords); err != nil {
		return err
	}

	exons, outcome := r.exons.FetchExons(symbol, coords)
	r.observe("exons", symbol, outcome)
	if err := r.store.UpsertExons(exons); err != nil {
		return err
	}

	unified, err := r.store.GetUnified(symbol)
	if err != nil {
		return err
	}
	if unified == nil {
		// All three upserts succeeded, so an empty join means the
		// storage layer is inconsistent.
		return fmt.Errorf("no joined record for %s after all partials were stored", symbol)
	}

	return report.NewWriter(out, wrapWidth).WriteRecord(*unified)
}

func (r *Runner) observe(stage, symbol string, o gene.Outcome) {
	if o.Defaulted {
		r.logger.Warn("partial record defaulted",
			zap.String("stage", stage),
			zap.String("symbol", symbol),
			zap.String("reason", o.Reason))
		return
	}
	r.logger.Info("partial record fetched",
		zap.String("stage", stage),
		zap.String("symbol", symbol))
}
