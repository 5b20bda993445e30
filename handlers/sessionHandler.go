package handlers

import (
	"net/http"

	"PalmCare/middlewares"
	"PalmCare/services"
	"PalmCare/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	utils.SetSessionCookie(c, session.Token, h.sessions.TTL())
	created(c, session)
}

func (h *SessionHandler) Current(c *gin.Context) {
	if session, found := middlewares.SessionFromContext(c); found {
		ok(c, session)
		return
	}
	session, err := h.sessions.Current(c.Request.Context(), utils.SessionTokenFrom(c))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, session)
}

func (h *SessionHandler) Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
