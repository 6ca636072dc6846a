// Package analysis runs the multi-step candidate analysis stage over a
// bounded worker pool. Per-step failures are recorded, never propagated; no
// candidate-level error escapes this package.
package analysis

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"token-radar/internal/cache"
	"token-radar/internal/connectors"
	"token-radar/internal/domain"
	"token-radar/internal/observability"
	"token-radar/internal/session"
)

// Defaults for the worker pool.
const (
	DefaultWidth       = 3
	DefaultStepTimeout = 10 * time.Second
)

// Options configures the orchestrator.
type Options struct {
	Market   connectors.MarketDataSource
	Dex      connectors.DexStatsSource
	Security connectors.SecuritySource

	// Width bounds the number of candidates analyzed in parallel.
	Width int

	// StepTimeout bounds each connector call. In-flight steps run to this
	// timeout even after the overall deadline elapses.
	StepTimeout time.Duration

	Session *session.Context
	Metrics *observability.Metrics
	Logger  zerolog.Logger
}

// Orchestrator executes the fixed analysis step sequence for each survivor.
type Orchestrator struct {
	market   connectors.MarketDataSource
	dex      connectors.DexStatsSource
	security connectors.SecuritySource

	width       int
	stepTimeout time.Duration

	session *session.Context
	metrics *observability.Metrics
	log     zerolog.Logger
}

// New creates an orchestrator. Width defaults to 3, step timeout to 10s.
func New(opts Options) *Orchestrator {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	stepTimeout := opts.StepTimeout
	if stepTimeout <= 0 {
		stepTimeout = DefaultStepTimeout
	}
	return &Orchestrator{
		market:      opts.Market,
		dex:         opts.Dex,
		security:    opts.Security,
		width:       width,
		stepTimeout: stepTimeout,
		session:     opts.Session,
		metrics:     opts.Metrics,
		log:         opts.Logger,
	}
}

// Analyze runs the step sequence for every candidate over the worker pool and
// returns one AnalysisRecord per candidate. The records' order follows
// completion, not input; callers must not rely on it.
//
// The context's deadline acts as the overall cycle deadline: once it elapses
// no new candidate is dispatched, but candidates already being analyzed run
// to their own per-step timeouts rather than being hard-preempted.
func (o *Orchestrator) Analyze(ctx context.Context, store *cache.Cache, candidates []domain.Candidate) []*domain.AnalysisRecord {
	if len(candidates) == 0 {
		return nil
	}

	jobs := make(chan domain.Candidate)
	results := make(chan *domain.AnalysisRecord, len(candidates))

	// In-flight work is detached from the overall deadline; each step gets
	// its own timeout instead.
	detached := context.WithoutCancel(ctx)

	done := make(chan struct{})
	for i := 0; i < o.width; i++ {
		go func() {
			for cand := range jobs {
				results <- o.analyzeCandidate(detached, store, cand)
			}
			done <- struct{}{}
		}()
	}

	dispatched := 0
dispatch:
	for _, cand := range candidates {
		select {
		case <-ctx.Done():
			o.log.Warn().
				Int("remaining", len(candidates)-dispatched).
				Msg("cycle deadline elapsed, skipping remaining candidates")
			break dispatch
		case jobs <- cand:
			dispatched++
		}
	}
	close(jobs)

	for i := 0; i < o.width; i++ {
		<-done
	}
	close(results)

	records := make([]*domain.AnalysisRecord, 0, dispatched)
	for rec := range results {
		records = append(records, rec)
	}
	return records
}

// analyzeCandidate runs the seven steps sequentially for one candidate.
// A step failure is recorded and the sequence continues.
func (o *Orchestrator) analyzeCandidate(ctx context.Context, store *cache.Cache, cand domain.Candidate) *domain.AnalysisRecord {
	rec := domain.NewAnalysisRecord(cand)

	for _, step := range domain.AnalysisSteps() {
		stepCtx, cancel := context.WithTimeout(ctx, o.stepTimeout)
		data, err := o.runStep(stepCtx, store, cand.Address, step)
		cancel()

		rec.RecordStep(step, data, err)
		if o.session != nil {
			o.session.RecordStep(err == nil)
		}
		if o.metrics != nil {
			outcome := "success"
			if err != nil {
				outcome = "failure"
			}
			o.metrics.StepsTotal.WithLabelValues(string(step), outcome).Inc()
		}
		if err != nil {
			o.log.Debug().
				Str("address", cand.Address).
				Str("step", string(step)).
				Err(err).
				Msg("analysis step failed")
		}
	}

	if o.session != nil {
		o.session.RecordCandidateAnalyzed()
	}
	if rec.Failed() {
		o.log.Warn().Str("address", cand.Address).Msg("all analysis steps failed")
	}
	return rec
}

func (o *Orchestrator) runStep(ctx context.Context, store *cache.Cache, address string, step domain.StepName) (any, error) {
	switch step {
	case domain.StepOverview:
		return o.stepOverview(ctx, store, address)
	case domain.StepWhale:
		return o.stepWhale(ctx, store, address)
	case domain.StepVolumePrice:
		return o.stepVolumePrice(ctx, store, address)
	case domain.StepCommunity:
		return o.stepCommunity(ctx, store, address)
	case domain.StepSecurity:
		return o.stepSecurity(ctx, store, address)
	case domain.StepDexLiquidity:
		return o.stepDexLiquidity(ctx, store, address)
	case domain.StepVLR:
		return o.stepVLR(ctx, store, address)
	default:
		return nil, nil
	}
}
