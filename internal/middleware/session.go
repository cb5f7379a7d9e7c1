// internal/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "zip_session"
	sessionHeader = "X-Session-ID"

	// One year; the cart is durable state, not a login session.
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// Session assigns every visitor an opaque session identifier. The cart,
// pending-order reference, and login-redirect target are all keyed by it.
// API clients may supply their own via the X-Session-ID header.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(sessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}
