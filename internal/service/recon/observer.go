package recon

import (
	"context"
	"time"

	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
)

// Status classifies how a tick ended.
type Status string

const (
	StatusOK          Status = "ok"
	StatusRecoverable Status = "recoverable"
	StatusFatal       Status = "fatal"
)

// Outcome is the explicit result of a single tick. Every tick produces one;
// none are swallowed.
type Outcome struct {
	Kind     string
	Status   Status
	Drift    bool
	Err      error
	Duration time.Duration
}

// Observer receives tick outcomes.
type Observer interface {
	Observe(ctx context.Context, out Outcome)
}

// MetricsObserver forwards outcomes to Prometheus and the structured log.
type MetricsObserver struct {
	log logger.Logger
}

func NewMetricsObserver(log logger.Logger) *MetricsObserver {
	return &MetricsObserver{log: log}
}

func (o *MetricsObserver) Observe(ctx context.Context, out Outcome) {
	metrics.RecordReconTick(out.Kind, string(out.Status), out.Duration)
	if out.Drift {
		metrics.ReconDriftTotal.Inc()
	}

	switch out.Status {
	case StatusOK:
		if out.Drift {
			o.log.Info(ctx, "drift detected, state reloaded", "kind", out.Kind, "duration", out.Duration.String())
		} else {
			o.log.Debug(ctx, "tick completed", "kind", out.Kind, "duration", out.Duration.String())
		}
	case StatusRecoverable:
		o.log.Warn(ctx, "tick failed, will retry on next interval", "kind", out.Kind, "err", out.Err.Error())
	case StatusFatal:
		o.log.Error(ctx, "tick aborted", out.Err, "kind", out.Kind)
	}
}
