package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	SessionHeader = "X-Session-Token"
)

func SetSessionCookie(c *gin.Context, token string, expiry time.Duration) {
	c.SetCookie(SessionCookie, token, int(expiry.Seconds()), "/", "", secureCookies(), true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", secureCookies(), true)
}

// SessionTokenFrom reads the token from the cookie, falling back to the header.
func SessionTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	return c.GetHeader(SessionHeader)
}

func secureCookies() bool {
	// Plain HTTP during local development.
	return gin.Mode() != gin.DebugMode
}
