package middlewares

import (
	"PalmCare/models"
	"PalmCare/services"
	"PalmCare/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionMiddleware attaches the display identity when the request carries a
// readable session token. It never rejects a request.
func SessionMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := utils.SessionTokenFrom(c); token != "" {
			if session, err := sessions.Current(c.Request.Context(), token); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// SessionFromContext returns the identity attached by SessionMiddleware.
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
