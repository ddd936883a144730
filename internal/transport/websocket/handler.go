package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/iamasit07/conn4/pkg/auth"
	"github.com/iamasit07/conn4/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	initTimeout  = 10 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	Upgrader       websocket.Upgrader
}

// NewHandler accepts upgrades from allowedOrigins. Requests without an
// Origin header (non-browser clients) are always accepted.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(r.Context(), conn)
}

// handleConnection waits for an init message carrying the session token,
// then serves drop/restart/state requests until the socket closes.
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(initTimeout))

	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var first ClientMessage
	if err := json.Unmarshal(data, &first); err != nil || first.Type != TypeInit || first.Token == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.WriteJSON(ServerMessage{Type: TypeError, Message: "expected init message with token"})
		conn.Close()
		return
	}

	claims, err := auth.ValidateSessionToken(h.JWTSecret, first.Token)
	if err == nil && !uid.IsSessionID(claims.SessionID) {
		err = auth.ErrInvalidToken
	}
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(ServerMessage{Type: TypeError, Message: "invalid or expired session token"})
		conn.Close()
		return
	}

	session, err := h.SessionManager.GetSession(ctx, claims.SessionID)
	if err != nil {
		log.Printf("[WS] Session %s unavailable: %v", claims.SessionID, err)
		conn.WriteJSON(ServerMessage{Type: TypeError, Message: "session not found"})
		conn.Close()
		return
	}

	sessionID := session.ID
	h.ConnManager.AddConnection(sessionID, conn)
	log.Printf("[WS] Connection initialized for session %s", sessionID)

	done := make(chan struct{})
	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for session %s", sessionID)
		h.ConnManager.RemoveConnectionIfMatching(sessionID, conn)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := h.ConnManager.ping(sessionID, conn); err != nil {
					return
				}
			}
		}
	}()

	h.sendState(session)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Session %s disconnected unexpectedly: %v", sessionID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.sendError(sessionID, "invalid message format")
			continue
		}

		h.processMessage(ctx, session, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, session *game.GameSession, msg ClientMessage) {
	switch msg.Type {
	case TypeDrop:
		if msg.Column == nil {
			h.sendError(session.ID, "column is required")
			return
		}
		// the board itself reaches the client through Render
		if _, err := session.HandleMove(ctx, *msg.Column); err != nil {
			h.sendError(session.ID, err.Error())
		}

	case TypeRestart:
		if _, err := session.Restart(ctx); err != nil {
			h.sendError(session.ID, err.Error())
		}

	case TypeState:
		h.sendState(session)

	default:
		h.sendError(session.ID, "unknown message type: "+msg.Type)
	}
}

func (h *Handler) sendState(session *game.GameSession) {
	state := session.State()
	h.ConnManager.SendMessage(session.ID, ServerMessage{
		Type:            TypeState,
		SessionID:       state.SessionID,
		Difficulty:      state.Difficulty,
		DifficultyLabel: state.DifficultyLabel,
		Message:         state.Board.Status,
		Board:           &state.Board,
	})
}

func (h *Handler) sendError(sessionID, message string) {
	h.ConnManager.SendMessage(sessionID, ServerMessage{Type: TypeError, Message: message})
}
