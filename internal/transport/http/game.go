package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/conn4/internal/domain"
	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/iamasit07/conn4/internal/transport/http/middleware"
	"github.com/iamasit07/conn4/pkg/auth"
	"github.com/iamasit07/conn4/pkg/httputil"
	"github.com/iamasit07/conn4/pkg/useragent"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	JWTSecret      string
	SessionTTL     time.Duration
	Production     bool
}

func NewGameHandler(sm *game.SessionManager, jwtSecret string, sessionTTL time.Duration, production bool) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		SessionTTL:     sessionTTL,
		Production:     production,
	}
}

type createGameRequest struct {
	Players    int    `json:"players" binding:"required"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Difficulty string `json:"difficulty"`
}

type createGameResponse struct {
	Token string    `json:"token"`
	Game  game.View `json:"game"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Move domain.MoveResult `json:"move"`
	Game game.View         `json:"game"`
}

// CreateGame starts a new session and hands the browser its token.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "players is required"})
		return
	}

	session, err := h.SessionManager.CreateSession(c.Request.Context(), game.SessionOptions{
		Rows:       req.Rows,
		Cols:       req.Cols,
		Players:    req.Players,
		Difficulty: req.Difficulty,
		Client:     useragent.ClientLabel(c.Request) + " from " + useragent.ClientIP(c.Request),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := auth.GenerateSessionToken(h.JWTSecret, session.ID, h.SessionTTL)
	if err != nil {
		log.Printf("[HTTP] Failed to sign token for session %s: %v", session.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	httputil.SetSessionCookie(c.Writer, token, h.SessionTTL, h.Production)
	c.JSON(http.StatusCreated, createGameResponse{Token: token, Game: session.State()})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// DropPiece applies one column click.
func (h *GameHandler) DropPiece(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := session.HandleMove(c.Request.Context(), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{Move: result, Game: session.State()})
}

func (h *GameHandler) RestartGame(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if _, err := session.Restart(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.State())
}

func (h *GameHandler) EndGame(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// also closes the session's socket
	if err := h.SessionManager.RemoveSession(c.Request.Context(), session.ID); err != nil && !errors.Is(err, game.ErrSessionNotFound) {
		writeError(c, err)
		return
	}
	httputil.ClearSessionCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.SessionManager.ActiveCount(),
	})
}

// writeError maps engine and service errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, game.ErrInvalidDifficulty):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameAlreadyOver):
		status = http.StatusConflict
	case errors.Is(err, game.ErrSessionNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] Unexpected error: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
