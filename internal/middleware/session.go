package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/response"
	"kanban-board-api/internal/session"
)

// SessionIDKey is the gin context key holding the authenticated session id.
const SessionIDKey = "session_id"

// SessionValidator resolves a session token to a live session
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*session.Session, error)
}

// RequireSession rejects requests without a live session cookie with 401,
// or with 500 when the session store cannot answer. The handler chain is
// aborted before any handler runs.
func RequireSession(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sess, err := validator.Validate(ctx, token)
		if err != nil {
			if !session.IsUnauthenticated(err) {
				// store unreachable, not a logout
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
					Error: "Internal server error",
					Code:  response.ErrCodeInternal,
				})
				return
			}
			abortUnauthorized(c)
			return
		}

		c.Set(SessionIDKey, sess.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
		Error: "Unauthorized",
		Code:  response.ErrCodeUnauthorized,
	})
}
