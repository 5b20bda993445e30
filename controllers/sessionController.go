package controllers

import (
	"PalmCare/handlers"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Handler *handlers.SessionHandler
}

func NewSessionController(sessionHandler *handlers.SessionHandler) *SessionController {
	return &SessionController{Handler: sessionHandler}
}

// RegisterRoutes adds the session routes. None of the API is guarded by them.
func (sc *SessionController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/session", sc.Handler.Login)
	api.GET("/session", sc.Handler.Current)
	api.DELETE("/session", sc.Handler.Logout)
}
