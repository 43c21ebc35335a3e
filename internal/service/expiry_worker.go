package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ExpirySweeper is implemented by the prescription usecase.
type ExpirySweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// ExpiryWorker periodically sweeps ACTIVE prescriptions past their
// expiry date. The sweep is idempotent, so overlapping runs after a
// slow tick are harmless.
type ExpiryWorker struct {
	sweeper  ExpirySweeper
	log      *logrus.Logger
	interval time.Duration
}

func NewExpiryWorker(sweeper ExpirySweeper, log *logrus.Logger, interval time.Duration) *ExpiryWorker {
	return &ExpiryWorker{
		sweeper:  sweeper,
		log:      log,
		interval: interval,
	}
}

// Start blocks until the context is cancelled, sweeping once per
// interval. Run it in its own goroutine.
func (w *ExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infof("Prescription expiry worker started, interval=%s", w.interval)

	// Catch up on anything that expired while the service was down.
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Prescription expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	count, err := w.sweeper.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		w.log.Warnf("Prescription expiry sweep failed: %+v", err)
		return
	}
	if count > 0 {
		w.log.Infof("Prescription expiry sweep: %d newly expired", count)
	}
}
