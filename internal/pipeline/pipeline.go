// Package pipeline turns the loaded district snapshot into per-selection
// aggregate metrics and the row sets the presentation layer charts from.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/greenfleet/esb-district-metrics/internal/dataset"
	"github.com/greenfleet/esb-district-metrics/internal/domain"
	"github.com/greenfleet/esb-district-metrics/internal/observability"
)

// RecordView is a district row with its per-row adoption rate attached, as
// consumed by scatter and trend rendering. The per-row rate is distinct from
// the scope-level AggregateMetrics.AdoptionRate and the two are never
// interchangeable.
type RecordView struct {
	domain.DistrictRecord
	ESBAdoptionRate *float64 `json:"esb_adoption_rate"`
}

// Result is everything one (state, city) selection produces: metrics for
// both scopes, the city rows for map and trend rendering, and the full state
// rows for scatter background.
type Result struct {
	State        string                  `json:"state"`
	City         string                  `json:"city"`
	CityMetrics  domain.AggregateMetrics `json:"city_metrics"`
	StateMetrics domain.AggregateMetrics `json:"state_metrics"`
	CityRows     []RecordView            `json:"city_rows"`
	StateRows    []RecordView            `json:"state_rows"`
	ComputedAt   time.Time               `json:"computed_at"`
}

// Pipeline answers selection queries against one immutable dataset snapshot.
// It is safe for concurrent use: the snapshot is never mutated and the
// result cache is internally synchronized.
type Pipeline struct {
	snapshot *dataset.Snapshot
	logger   *slog.Logger
	metrics  *observability.Metrics
	cache    *resultCache
}

// New creates a Pipeline over a loaded snapshot. It scans the snapshot once
// for out-of-range values, logging and counting each finding; the values
// themselves are kept unmodified. cacheSize <= 0 disables result caching.
func New(snapshot *dataset.Snapshot, logger *slog.Logger, metrics *observability.Metrics, cacheSize int) *Pipeline {
	p := &Pipeline{
		snapshot: snapshot,
		logger:   logger,
		metrics:  metrics,
	}
	if cacheSize > 0 {
		p.cache = newResultCache(cacheSize)
	}

	for _, r := range snapshot.Records() {
		for _, f := range domain.CheckRanges(r) {
			logger.Warn("value out of expected range",
				"district", r.District,
				"state", r.State,
				"field", f.Field,
				"value", f.Value,
			)
			metrics.OutOfRangeValues.WithLabelValues(f.Field).Inc()
		}
	}

	metrics.DatasetRows.Set(float64(snapshot.Len()))
	metrics.DatasetLoaded.Set(1)

	return p
}

// CheckReadiness returns nil once a non-empty snapshot is held.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.snapshot == nil || p.snapshot.Len() == 0 {
		return errors.New("dataset snapshot is empty")
	}
	return nil
}

// Snapshot returns the underlying dataset snapshot.
func (p *Pipeline) Snapshot() *dataset.Snapshot { return p.snapshot }

// States enumerates the snapshot's distinct states for picker population.
func (p *Pipeline) States() []string {
	return States(p.snapshot.Records())
}

// Cities enumerates the distinct cities of one state (exact state match).
func (p *Pipeline) Cities(state string) []string {
	return Cities(p.snapshot.Records(), state)
}

// Compute answers one selection. It filters the snapshot into city and state
// scopes, derives per-row adoption rates, and aggregates both scopes. A
// selection matching no city rows is answered with all-nil city metrics, not
// an error. Results are cached per normalized selection; determinism of the
// aggregation makes the cache transparent.
func (p *Pipeline) Compute(state, city string) Result {
	key := cacheKey(state, city)
	if p.cache != nil {
		if res, ok := p.cache.get(key); ok {
			p.metrics.ResultCache.WithLabelValues("hit").Inc()
			return res
		}
		p.metrics.ResultCache.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	cityRows, stateRows := SelectScope(p.snapshot.Records(), state, city)

	res := Result{
		State:        state,
		City:         city,
		CityMetrics:  domain.ComputeMetrics(cityRows),
		StateMetrics: domain.ComputeMetrics(stateRows),
		CityRows:     toViews(cityRows),
		StateRows:    toViews(stateRows),
		ComputedAt:   domain.Clock().Now(),
	}

	p.metrics.SelectionsTotal.Inc()
	p.metrics.ComputeDuration.Observe(time.Since(start).Seconds())

	if len(cityRows) == 0 {
		p.metrics.EmptySelections.Inc()
		p.logger.Info("selection matched no districts",
			"state", state,
			"city", city,
		)
	}

	if p.cache != nil {
		p.cache.put(key, res)
	}
	return res
}

// toViews attaches the per-row adoption rate to each record. One derivation
// applied uniformly to every scope; the rate is never recomputed elsewhere.
func toViews(rows []domain.DistrictRecord) []RecordView {
	views := make([]RecordView, len(rows))
	for i, r := range rows {
		views[i] = RecordView{DistrictRecord: r, ESBAdoptionRate: r.AdoptionRate()}
	}
	return views
}

func cacheKey(state, city string) string {
	return strings.ToLower(strings.TrimSpace(state)) + "|" + strings.ToLower(strings.TrimSpace(city))
}
