// Package alert defines the outbound alert boundary. The real notification
// channel is external; this package ships the interface plus a log-backed
// sink.
package alert

import (
	"context"

	"github.com/rs/zerolog"

	"token-radar/internal/domain"
)

// Sink delivers one conviction alert to the external notification channel.
type Sink interface {
	Deliver(ctx context.Context, bd *domain.ScoreBreakdown) error
}

// LogSink writes alerts to the structured log.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a log-backed alert sink.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Deliver implements Sink.
func (s *LogSink) Deliver(_ context.Context, bd *domain.ScoreBreakdown) error {
	event := s.log.Info().
		Str("address", bd.Address).
		Str("symbol", bd.Symbol).
		Float64("score", bd.FinalScore).
		Float64("confidence", bd.Confidence).
		Bool("degraded", bd.DegradedMode)
	for _, f := range bd.Findings {
		event = event.Str("finding:"+f.Rule, string(f.Risk))
	}
	event.Msg("conviction alert")
	return nil
}

var _ Sink = (*LogSink)(nil)
