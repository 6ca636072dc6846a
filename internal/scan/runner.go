// Package scan wires discovery, pre-filtering, analysis, scoring, and alert
// delivery into a single cycle. Every cycle starts from an empty cache.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"token-radar/internal/alert"
	"token-radar/internal/analysis"
	"token-radar/internal/cache"
	"token-radar/internal/discovery"
	"token-radar/internal/domain"
	"token-radar/internal/observability"
	"token-radar/internal/prefilter"
	"token-radar/internal/reporting"
	"token-radar/internal/routing"
	"token-radar/internal/scoring"
	"token-radar/internal/session"
)

// Options configures a Runner. Source, Filter, Orchestrator, Engine, and
// Session are required; Keeper, Sink, and Metrics may be nil.
type Options struct {
	Source       discovery.Source
	Filter       *prefilter.PreFilter
	Orchestrator *analysis.Orchestrator
	Engine       *scoring.Engine
	Keeper       *routing.Keeper
	Sink         alert.Sink
	Session      *session.Context
	Metrics      *observability.Metrics

	// ConvictionThreshold and MinConfidence gate alert delivery.
	ConvictionThreshold float64
	MinConfidence       float64

	// CycleDeadline bounds one cycle's dispatch. 0 disables the deadline.
	CycleDeadline time.Duration

	Logger zerolog.Logger
}

// CycleResult summarizes one completed cycle.
type CycleResult struct {
	Cycle      int
	Stats      *prefilter.Stats
	Breakdowns []*domain.ScoreBreakdown
	Report     *reporting.Report
	Duration   time.Duration
}

// Runner executes scan cycles.
type Runner struct {
	source  discovery.Source
	filter  *prefilter.PreFilter
	orch    *analysis.Orchestrator
	engine  *scoring.Engine
	keeper  *routing.Keeper
	sink    alert.Sink
	session *session.Context
	metrics *observability.Metrics
	reports *reporting.Builder

	convictionThreshold float64
	minConfidence       float64
	cycleDeadline       time.Duration

	log   zerolog.Logger
	now   func() time.Time
	cycle int
}

// NewRunner creates a runner from options.
func NewRunner(opts Options) *Runner {
	return &Runner{
		source:              opts.Source,
		filter:              opts.Filter,
		orch:                opts.Orchestrator,
		engine:              opts.Engine,
		keeper:              opts.Keeper,
		sink:                opts.Sink,
		session:             opts.Session,
		metrics:             opts.Metrics,
		reports:             reporting.NewBuilder(),
		convictionThreshold: opts.ConvictionThreshold,
		minConfidence:       opts.MinConfidence,
		cycleDeadline:       opts.CycleDeadline,
		log:                 opts.Logger,
		now:                 time.Now,
	}
}

// RunCycle executes one full scan cycle. It returns an error only when the
// cycle cannot proceed at all; per-candidate failures are absorbed into the
// analysis records and surface as degraded or lower-confidence scores.
func (r *Runner) RunCycle(ctx context.Context) (*CycleResult, error) {
	started := r.now()
	r.cycle++
	r.session.RecordCycle()

	candidates, err := r.source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover candidates: %w", err)
	}

	survivors, stats := r.filter.Apply(candidates)
	r.session.RecordPreFilter(stats.Evaluated, stats.Passed)
	if r.metrics != nil {
		r.metrics.CandidatesEvaluated.Add(float64(stats.Evaluated))
		r.metrics.CandidatesPassed.Add(float64(stats.Passed))
		for reason, n := range stats.Reasons {
			r.metrics.CandidatesFiltered.WithLabelValues(reason).Add(float64(n))
		}
	}
	r.log.Info().
		Int("cycle", r.cycle).
		Int("evaluated", stats.Evaluated).
		Int("passed", stats.Passed).
		Msg("pre-filter complete")

	r.refreshRouting(ctx, survivors)

	cctx := ctx
	if r.cycleDeadline > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, r.cycleDeadline)
		defer cancel()
	}

	store := cache.New()
	records := r.orch.Analyze(cctx, store, survivors)

	var snap *domain.RoutingSnapshot
	if r.keeper != nil {
		snap = r.keeper.Latest()
	}

	breakdowns := make([]*domain.ScoreBreakdown, 0, len(records))
	for _, rec := range records {
		bd := r.engine.Score(rec, snap)
		breakdowns = append(breakdowns, bd)
		r.session.RecordScore(bd.FinalScore)
		r.observeScore(bd)
		r.maybeAlert(ctx, bd)
	}

	if r.metrics != nil {
		r.metrics.CacheEntries.Set(float64(store.Stats().EntryCount))
		r.metrics.CyclesTotal.Inc()
		r.metrics.CycleDuration.Observe(r.now().Sub(started).Seconds())
	}
	store.ClearAll()

	report := r.reports.Build(r.cycle, r.engine.Strategy(), breakdowns, stats)
	return &CycleResult{
		Cycle:      r.cycle,
		Stats:      stats,
		Breakdowns: breakdowns,
		Report:     report,
		Duration:   r.now().Sub(started),
	}, nil
}

// Run executes cycles on a fixed interval until the context is canceled.
func (r *Runner) Run(ctx context.Context, interval time.Duration, onCycle func(*CycleResult)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := r.RunCycle(ctx)
		if err != nil {
			r.log.Error().Err(err).Msg("cycle failed")
		} else if onCycle != nil {
			onCycle(result)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Runner) refreshRouting(ctx context.Context, survivors []domain.Candidate) {
	if r.keeper == nil || !r.keeper.Stale(r.now()) {
		return
	}
	addresses := make([]string, len(survivors))
	for i, c := range survivors {
		addresses[i] = c.Address
	}
	if err := r.keeper.Refresh(ctx, addresses); err != nil {
		// A refresh failure keeps the previous snapshot in place.
		r.log.Warn().Err(err).Msg("routing refresh failed")
	}
}

func (r *Runner) observeScore(bd *domain.ScoreBreakdown) {
	if r.metrics == nil {
		return
	}
	r.metrics.ScoresComputed.Inc()
	r.metrics.ScoreHistogram.Observe(bd.FinalScore)
	if bd.DegradedMode {
		r.metrics.DegradedScores.Inc()
	}
	for _, f := range bd.Findings {
		r.metrics.FindingsTotal.WithLabelValues(string(f.Type), f.Rule).Inc()
	}
}

func (r *Runner) maybeAlert(ctx context.Context, bd *domain.ScoreBreakdown) {
	if r.sink == nil {
		return
	}
	if bd.FinalScore < r.convictionThreshold || bd.Confidence < r.minConfidence {
		return
	}
	if err := r.sink.Deliver(ctx, bd); err != nil {
		r.log.Warn().Err(err).Str("address", bd.Address).Msg("alert delivery failed")
		return
	}
	r.session.RecordAlert()
	if r.metrics != nil {
		r.metrics.AlertsFired.Inc()
	}
}
