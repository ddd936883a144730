package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/conn4/internal/domain"
	"github.com/iamasit07/conn4/internal/view"
	"github.com/iamasit07/conn4/pkg/uid"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Options are the manager-wide defaults. MaxRows and MaxCols bound what a
// client may ask for.
type Options struct {
	Rows       int
	Cols       int
	MaxRows    int
	MaxCols    int
	SessionTTL time.Duration
}

// SessionOptions describe a new game. Zero Rows or Cols use the defaults.
type SessionOptions struct {
	Rows       int
	Cols       int
	Players    int
	Difficulty string
	Client     string
}

// GameSession owns exactly one engine. All engine access goes through mu.
type GameSession struct {
	ID           string
	Difficulty   string
	Client       string
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time
	game         *domain.Game
	removed      bool
	mu           sync.Mutex
	manager      *SessionManager
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession
	mu       sync.RWMutex
	store    SnapshotStore
	renderer Renderer
	opts     Options
}

func NewSessionManager(store SnapshotStore, renderer Renderer, opts Options) *SessionManager {
	if store == nil {
		store = NopStore{}
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	if opts.Rows == 0 {
		opts.Rows = domain.DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = domain.DefaultCols
	}
	if opts.MaxRows == 0 {
		opts.MaxRows = domain.DefaultMaxRows
	}
	if opts.MaxCols == 0 {
		opts.MaxCols = domain.DefaultMaxCols
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 24 * time.Hour
	}

	return &SessionManager{
		sessions: make(map[string]*GameSession),
		store:    store,
		renderer: renderer,
		opts:     opts,
	}
}

// SetRenderer swaps the render target. Transport layers that are built after
// the manager use it to register themselves.
func (sm *SessionManager) SetRenderer(r Renderer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if r == nil {
		r = nopRenderer{}
	}
	sm.renderer = r
}

func (sm *SessionManager) currentRenderer() Renderer {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.renderer
}

func (sm *SessionManager) CreateSession(ctx context.Context, opts SessionOptions) (*GameSession, error) {
	difficulty, ok := view.NormalizeDifficulty(opts.Difficulty)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, opts.Difficulty)
	}

	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = sm.opts.Rows
	}
	if cols == 0 {
		cols = sm.opts.Cols
	}
	if rows > sm.opts.MaxRows || cols > sm.opts.MaxCols {
		return nil, fmt.Errorf("%w: board %dx%d exceeds %dx%d",
			domain.ErrInvalidConfiguration, rows, cols, sm.opts.MaxRows, sm.opts.MaxCols)
	}

	g, err := domain.NewGame(rows, cols, opts.Players)
	if err != nil {
		return nil, err
	}

	id, err := uid.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &GameSession{
		ID:           id,
		Difficulty:   difficulty,
		Client:       opts.Client,
		CreatedAt:    now,
		LastActivity: now,
		game:         g,
		manager:      sm,
	}

	session.persist(ctx)

	sm.mu.Lock()
	sm.sessions[id] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %dx%d, %d player(s), difficulty %s, client %q",
		id, rows, cols, opts.Players, difficulty, opts.Client)
	return session, nil
}

// GetSession returns the session from memory, or rebuilds it from the store.
func (sm *SessionManager) GetSession(ctx context.Context, sessionID string) (*GameSession, error) {
	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if exists {
		return session, nil
	}

	rec, err := sm.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}

	g, err := rec.Restore()
	if err != nil {
		return nil, fmt.Errorf("failed to replay session %s: %w", sessionID, err)
	}

	now := time.Now()
	restored := &GameSession{
		ID:           rec.ID,
		Difficulty:   rec.Difficulty,
		Client:       rec.Client,
		CreatedAt:    rec.CreatedAt,
		LastActivity: now,
		game:         g,
		manager:      sm,
	}
	if g.IsOver() {
		restored.FinishedAt = now
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	// another request may have restored it first
	if existing, ok := sm.sessions[sessionID]; ok {
		return existing, nil
	}
	sm.sessions[sessionID] = restored

	log.Printf("[SESSION] Restored session %s at turn %d", sessionID, g.CurrentTurn())
	return restored, nil
}

// RemoveSession ends a session for good: later moves on any held pointer
// fail with ErrSessionNotFound, the cached copy is deleted and the socket
// is closed.
func (sm *SessionManager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	session, exists := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	renderer := sm.renderer
	sm.mu.Unlock()

	// in-flight moves finish their persist before the record is deleted
	if exists {
		session.mu.Lock()
		session.removed = true
		session.mu.Unlock()
	}

	if err := sm.store.Delete(ctx, sessionID); err != nil {
		log.Printf("[SESSION] Error deleting cached session %s: %v", sessionID, err)
	}
	renderer.RemoveConnection(sessionID)
	if !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", sessionID)
	return nil
}

func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupOldSessions drops finished sessions older than finishedTTL and
// unfinished ones idle longer than idleTTL. Only memory is touched; cached
// copies expire on their own TTL.
// A swept session is marked removed and its socket closed, so a later
// GetSession rebuilds the only live engine for that ID.
func (sm *SessionManager) CleanupOldSessions(now time.Time, finishedTTL, idleTTL time.Duration) int {
	sm.mu.Lock()
	var swept []string
	for id, session := range sm.sessions {
		session.mu.Lock()
		finished := session.game.IsOver()
		stale := (finished && now.Sub(session.FinishedAt) > finishedTTL) ||
			(!finished && now.Sub(session.LastActivity) > idleTTL)
		if stale {
			session.removed = true
		}
		session.mu.Unlock()

		if stale {
			delete(sm.sessions, id)
			swept = append(swept, id)
		}
	}
	renderer := sm.renderer
	sm.mu.Unlock()

	for _, id := range swept {
		renderer.RemoveConnection(id)
	}

	if len(swept) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", len(swept))
	}
	return len(swept)
}

// HandleMove drops a disk for whoever's turn it is and renders the result.
func (gs *GameSession) HandleMove(ctx context.Context, column int) (domain.MoveResult, error) {
	// fetched before gs.mu: cleanup takes the manager lock first
	renderer := gs.manager.currentRenderer()

	gs.mu.Lock()
	if gs.removed {
		gs.mu.Unlock()
		return domain.MoveResult{}, ErrSessionNotFound
	}

	result, err := gs.game.DropPiece(column)
	if err != nil {
		gs.mu.Unlock()
		return result, err
	}

	gs.LastActivity = time.Now()
	switch result.Outcome {
	case domain.OutcomeWinner:
		gs.FinishedAt = gs.LastActivity
		log.Printf("[GAME] Session %s won by %s on turn %d", gs.ID, view.DisplayName(result.Winner), result.Turn)
	case domain.OutcomeDraw:
		gs.FinishedAt = gs.LastActivity
		log.Printf("[GAME] Session %s ended in a draw", gs.ID)
	}

	gs.persist(ctx)
	board := view.RenderBoard(gs.game)
	gs.mu.Unlock()

	// socket writes can block, so they happen outside the session lock
	renderer.Render(gs.ID, board)
	return result, nil
}

// Restart replaces the engine with a fresh one of the same shape.
func (gs *GameSession) Restart(ctx context.Context) (view.Board, error) {
	renderer := gs.manager.currentRenderer()

	gs.mu.Lock()
	if gs.removed {
		gs.mu.Unlock()
		return view.Board{}, ErrSessionNotFound
	}

	fresh, err := domain.NewGame(gs.game.Rows(), gs.game.Cols(), gs.game.PlayerCount())
	if err != nil {
		gs.mu.Unlock()
		log.Printf("[SESSION] Error restarting session %s: %v", gs.ID, err)
		return view.Board{}, fmt.Errorf("failed to restart session %s: %w", gs.ID, err)
	}
	gs.game = fresh
	gs.LastActivity = time.Now()
	gs.FinishedAt = time.Time{}

	gs.persist(ctx)
	board := view.RenderBoard(gs.game)
	gs.mu.Unlock()

	renderer.Render(gs.ID, board)

	log.Printf("[SESSION] Restarted session %s", gs.ID)
	return board, nil
}

// View is a read-only description of a session for transport layers.
type View struct {
	SessionID       string     `json:"sessionId"`
	Players         int        `json:"players"`
	Difficulty      string     `json:"difficulty"`
	DifficultyLabel string     `json:"difficultyLabel"`
	Status          string     `json:"state"`
	Board           view.Board `json:"board"`
}

func (gs *GameSession) State() View {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	return View{
		SessionID:       gs.ID,
		Players:         gs.game.PlayerCount(),
		Difficulty:      gs.Difficulty,
		DifficultyLabel: view.DifficultyLabel(gs.Difficulty),
		Status:          string(gs.game.Status()),
		Board:           view.RenderBoard(gs.game),
	}
}

// persist writes the move list to the store. Failures are logged only: the
// in-memory session stays authoritative. Caller must hold gs.mu.
func (gs *GameSession) persist(ctx context.Context) {
	rec := &domain.SessionRecord{
		ID:         gs.ID,
		Rows:       gs.game.Rows(),
		Cols:       gs.game.Cols(),
		Players:    gs.game.PlayerCount(),
		Difficulty: gs.Difficulty,
		Client:     gs.Client,
		Moves:      gs.game.Moves(),
		CreatedAt:  gs.CreatedAt,
	}
	if err := gs.manager.store.Save(ctx, rec, gs.manager.opts.SessionTTL); err != nil {
		log.Printf("[SESSION] Error caching session %s: %v", gs.ID, err)
	}
}
