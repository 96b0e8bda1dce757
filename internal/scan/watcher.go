package scan

import (
	"context"
	"time"

	"forexscan/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Watcher re-runs the same scan on a fixed interval. Each run gets its own
// execID for log correlation; a failed run is logged and retried on the next
// tick rather than stopping the watcher.
type Watcher struct {
	scanner  *Scanner
	pairs    []domain.CurrencyPair
	interval time.Duration
	handle   func([]domain.ExchangeRate) error
	// -----
	sched gocron.Scheduler
}

func (w *Watcher) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		rates, scanErr := w.scanner.Run(jobCtx, w.pairs)
		if scanErr != nil {
			logrus.Errorf("Scan %s failed: %v", execID, scanErr)
			return
		}
		logrus.Infof("Scan %s fetched %d rates", execID, len(rates))
		if handleErr := w.handle(rates); handleErr != nil {
			logrus.Errorf("Scan %s result handling failed: %v", execID, handleErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop the watcher when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := w.Shutdown(); sdErr != nil {
			logrus.Errorf("Watcher shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (w *Watcher) Shutdown() error {
	if w.sched == nil {
		return nil
	}
	err := w.sched.Shutdown()
	w.sched = nil
	return err
}

func NewWatcher(scanner *Scanner, pairs []domain.CurrencyPair, interval time.Duration, handle func([]domain.ExchangeRate) error) *Watcher {
	return &Watcher{scanner: scanner, pairs: pairs, interval: interval, handle: handle}
}
