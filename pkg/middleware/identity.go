package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// UserIDHeader carries the authenticated user ID resolved by the
	// identity provider in front of this service
	UserIDHeader = "X-User-ID"
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey = "user_id"
	// SessionKeyKey is the context key for the anonymous session key
	SessionKeyKey = "session_key"
)

// Identity resolves the cart identity for every request: the user ID from the
// identity provider's header when present, otherwise an anonymous session key
// kept in a cookie. First-time visitors get a fresh key so the cart can be
// created lazily.
func Identity(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader(UserIDHeader); header != "" {
			if userID, err := strconv.ParseUint(header, 10, 32); err == nil && userID > 0 {
				c.Set(UserIDKey, uint(userID))
			}
		}

		sessionKey, err := c.Cookie(cookieName)
		if err != nil || sessionKey == "" {
			sessionKey = uuid.New().String()
			c.SetCookie(cookieName, sessionKey, 0, "/", "", false, true)
		}
		c.Set(SessionKeyKey, sessionKey)

		c.Next()
	}
}
