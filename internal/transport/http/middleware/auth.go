package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/iamasit07/conn4/pkg/auth"
	"github.com/iamasit07/conn4/pkg/httputil"
	"github.com/iamasit07/conn4/pkg/uid"
)

const sessionKey = "game_session"

// SessionMiddleware resolves the session token to a live game session and
// stores it on the context for SessionFromContext.
func SessionMiddleware(jwtSecret string, sm *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateSessionToken(jwtSecret, tokenString)
		if err == nil && !uid.IsSessionID(claims.SessionID) {
			err = auth.ErrInvalidToken
		}
		if err != nil {
			httputil.ClearSessionCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		session, err := sm.GetSession(c.Request.Context(), claims.SessionID)
		if errors.Is(err, game.ErrSessionNotFound) {
			httputil.ClearSessionCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		if err != nil {
			log.Printf("[AUTH] Session lookup failed for %s: %v", claims.SessionID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (*game.GameSession, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*game.GameSession)
	return session, ok
}
