package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/conn4/internal/domain"
	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/iamasit07/conn4/pkg/auth"
	"github.com/iamasit07/conn4/pkg/httputil"
	"github.com/stretchr/testify/require"
)

const testSecret = "http-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *game.SessionManager) {
	t.Helper()
	sm := game.NewSessionManager(nil, nil, game.Options{})
	h := NewGameHandler(sm, testSecret, time.Hour, false)
	router := NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://localhost:8080"},
		JWTSecret:      testSecret,
	}, sm, h, func(w http.ResponseWriter, r *http.Request) {})
	return router, sm
}

func doJSON(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, router http.Handler, body map[string]any) createGameResponse {
	t.Helper()
	rec := doJSON(router, http.MethodPost, "/api/game", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp createGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestCreateGame(t *testing.T) {
	router, sm := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/game", "", map[string]any{"players": 2, "difficulty": "medium"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp createGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Game.Players)
	require.Equal(t, "medium", resp.Game.Difficulty)
	require.Equal(t, "Medium", resp.Game.DifficultyLabel)
	require.Equal(t, string(domain.StatusNotStarted), resp.Game.Status)
	require.Equal(t, 6, resp.Game.Board.Rows)
	require.Equal(t, 1, sm.ActiveCount())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, httputil.SessionCookieName, cookies[0].Name)
	require.Equal(t, resp.Token, cookies[0].Value)

	claims, err := auth.ValidateSessionToken(testSecret, resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.Game.SessionID, claims.SessionID)
}

func TestCreateGame_BadInput(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []map[string]any{
		{},
		{"players": 3},
		{"players": 2, "rows": 3},
		{"players": 1, "difficulty": "godlike"},
		{"players": 1, "rows": 3000, "cols": 3000},
		{"players": 2, "cols": 21},
	}
	for _, body := range cases {
		rec := doJSON(router, http.MethodPost, "/api/game", "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "%v: %s", body, rec.Body.String())
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/game", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/game/move", "not-a-token", map[string]any{"column": 0})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	malformed, err := auth.GenerateSessionToken(testSecret, "feedface", time.Hour)
	require.NoError(t, err)
	rec = doJSON(router, http.MethodGet, "/api/game", malformed, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	orphan, err := auth.GenerateSessionToken(testSecret, "0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	rec = doJSON(router, http.MethodGet, "/api/game", orphan, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDropPiece_PlaysToWin(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createGame(t, router, map[string]any{"players": 2})

	var last moveResponse
	for _, col := range []int{3, 0, 3, 0, 3, 0, 3} {
		rec := doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{"column": col})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &last))
	}

	require.Equal(t, domain.OutcomeWinner, last.Move.Outcome)
	require.Equal(t, domain.PlayerA, last.Move.Winner)
	require.Equal(t, string(domain.StatusWon), last.Game.Status)
	require.Equal(t, "Player A Wins", last.Game.Board.Status)

	rec := doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{"column": 1})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/game/restart", created.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state game.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, string(domain.StatusNotStarted), state.Status)
	require.False(t, state.Board.Over)
}

func TestDropPiece_Errors(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createGame(t, router, map[string]any{"players": 2})

	rec := doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{"column": 9})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 6; i++ {
		rec = doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{"column": 0})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = doJSON(router, http.MethodPost, "/api/game/move", created.Token, map[string]any{"column": 0})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), domain.ErrColumnFull.Error())
}

func TestGetGame_WithCookie(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createGame(t, router, map[string]any{"players": 1, "rows": 5, "cols": 5})

	req := httptest.NewRequest(http.MethodGet, "/api/game", nil)
	req.AddCookie(&http.Cookie{Name: httputil.SessionCookieName, Value: created.Token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state game.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, 5, state.Board.Rows)
	require.Equal(t, 5, state.Board.Cols)
	require.Equal(t, "Player A", state.Board.Next)
}

func TestEndGame(t *testing.T) {
	router, sm := newTestRouter(t)
	created := createGame(t, router, map[string]any{"players": 2})

	rec := doJSON(router, http.MethodDelete, "/api/game", created.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 0, sm.ActiveCount())

	rec = doJSON(router, http.MethodGet, "/api/game", created.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/game", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	createGame(t, router, map[string]any{"players": 2})

	rec := doJSON(router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","sessions":1}`, rec.Body.String())
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
