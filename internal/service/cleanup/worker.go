package cleanup

import (
	"context"
	"log"
	"time"
)

// SessionSweeper is the part of the session manager the worker drives.
type SessionSweeper interface {
	CleanupOldSessions(now time.Time, finishedTTL, idleTTL time.Duration) int
}

type Worker struct {
	Sessions    SessionSweeper
	Interval    time.Duration
	FinishedTTL time.Duration
	IdleTTL     time.Duration
}

func NewWorker(sessions SessionSweeper, interval, finishedTTL, idleTTL time.Duration) *Worker {
	return &Worker{
		Sessions:    sessions,
		Interval:    interval,
		FinishedTTL: finishedTTL,
		IdleTTL:     idleTTL,
	}
}

// Start sweeps once immediately, then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.runCleanup(time.Now())
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case now := <-ticker.C:
			w.runCleanup(now)
		}
	}
}

func (w *Worker) runCleanup(now time.Time) int {
	removed := w.Sessions.CleanupOldSessions(now, w.FinishedTTL, w.IdleTTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale sessions", removed)
	}
	return removed
}
