package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	mu     sync.Mutex
	calls  int
	ttls   [2]time.Duration
	result int
}

func (s *countingSweeper) CleanupOldSessions(_ time.Time, finishedTTL, idleTTL time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.ttls = [2]time.Duration{finishedTTL, idleTTL}
	return s.result
}

func (s *countingSweeper) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestWorker_SweepsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{result: 1}
	w := NewWorker(sweeper, 5*time.Millisecond, time.Hour, 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.callCount() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	require.Equal(t, [2]time.Duration{time.Hour, 24 * time.Hour}, sweeper.ttls)
}

func TestWorker_RemovesStaleSessions(t *testing.T) {
	sm := game.NewSessionManager(nil, nil, game.Options{})
	ctx := context.Background()

	s, err := sm.CreateSession(ctx, game.SessionOptions{Players: 2})
	require.NoError(t, err)
	s.LastActivity = time.Now().Add(-2 * time.Hour)

	w := NewWorker(sm, time.Hour, time.Hour, time.Hour)
	require.Equal(t, 1, w.runCleanup(time.Now()))
	require.Equal(t, 0, sm.ActiveCount())
}
