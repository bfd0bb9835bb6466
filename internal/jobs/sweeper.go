package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/serigraph/quotebot/internal/logger"
)

// SessionSweeper expires idle sessions.
type SessionSweeper interface {
	Sweep() int
}

// MediaPurger removes published documents older than a cutoff.
type MediaPurger interface {
	Purge(ctx context.Context, cutoff time.Time) (int, error)
}

// Sweeper periodically expires idle sessions and purges published media.
type Sweeper struct {
	sessions  SessionSweeper
	media     MediaPurger
	interval  time.Duration
	retention time.Duration
	log       *logger.Logger
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweeper creates a sweeper. media may be nil.
func NewSweeper(sessions SessionSweeper, media MediaPurger, interval, retention time.Duration, log *logger.Logger) *Sweeper {
	if log == nil {
		log = logger.NewNop()
	}
	return &Sweeper{
		sessions:  sessions,
		media:     media,
		interval:  interval,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// Start runs the sweep loop in the background until Stop is called.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.log.Info("Sweeper already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)
	s.log.Info("🧹 Sweeper started", "interval", s.interval.String())
}

// Stop halts the loop and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info("⏹️  Sweeper stopped")
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) {
	if n := s.sessions.Sweep(); n > 0 {
		s.log.Info("expired idle sessions", "count", n)
	}

	if s.media == nil || s.retention <= 0 {
		return
	}
	n, err := s.media.Purge(ctx, s.now().Add(-s.retention))
	if err != nil {
		s.log.Error("media purge failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.log.Info("purged published documents", "count", n)
	}
}
