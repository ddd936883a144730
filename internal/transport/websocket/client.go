package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/conn4/internal/view"
)

const writeWait = 10 * time.Second

type connection struct {
	conn *websocket.Conn
	// gorilla connections support one concurrent writer
	writeMu sync.Mutex
}

// ConnectionManager tracks the single live socket of each session and
// pushes rendered boards to it.
type ConnectionManager struct {
	connections map[string]*connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*connection),
	}
}

// AddConnection registers conn for sessionID, closing any older socket.
func (cm *ConnectionManager) AddConnection(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.connections[sessionID]; exists {
		old.conn.Close()
	}
	cm.connections[sessionID] = &connection{conn: conn}
}

// RemoveConnectionIfMatching only removes conn if it is still the current
// socket, so a late cleanup cannot close a newer tab.
func (cm *ConnectionManager) RemoveConnectionIfMatching(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[sessionID]; exists && current.conn == conn {
		current.conn.Close()
		delete(cm.connections, sessionID)
	}
}

func (cm *ConnectionManager) RemoveConnection(sessionID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[sessionID]; exists {
		current.conn.Close()
		delete(cm.connections, sessionID)
	}
}

func (cm *ConnectionManager) IsConnected(sessionID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.connections[sessionID]
	return exists
}

// SendMessage writes message to the session's socket. A session without a
// socket is not an error.
func (cm *ConnectionManager) SendMessage(sessionID string, message ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.connections[sessionID]
	cm.mu.RUnlock()
	if !exists {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (cm *ConnectionManager) ping(sessionID string, conn *websocket.Conn) error {
	cm.mu.RLock()
	c, exists := cm.connections[sessionID]
	cm.mu.RUnlock()
	if !exists || c.conn != conn {
		return websocket.ErrCloseSent
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Render pushes the board, followed by a game_over notice once the game ends.
func (cm *ConnectionManager) Render(sessionID string, board view.Board) {
	if err := cm.SendMessage(sessionID, ServerMessage{Type: TypeBoard, SessionID: sessionID, Board: &board}); err != nil {
		log.Printf("[WS] Failed to render session %s: %v", sessionID, err)
		return
	}

	if board.Over {
		allowRestart := true
		msg := ServerMessage{
			Type:         TypeGameOver,
			SessionID:    sessionID,
			Message:      board.Status,
			Board:        &board,
			AllowRestart: &allowRestart,
		}
		if err := cm.SendMessage(sessionID, msg); err != nil {
			log.Printf("[WS] Failed to send game over for session %s: %v", sessionID, err)
		}
	}
}
