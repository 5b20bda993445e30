package handlers

import (
	"net/http"

	"PalmCare/middlewares"
	"PalmCare/navigation"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	queue     *services.QueueService
}

func NewDashboardHandler(dashboard *services.DashboardService, queue *services.QueueService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, queue: queue}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	ok(c, h.dashboard.Summary(c.Request.Context()))
}

type navigationResponse struct {
	Path    string             `json:"path"`
	Variant navigation.Variant `json:"variant"`
	Current *navigation.Route  `json:"current,omitempty"`
	Items   []navigation.Item  `json:"items"`
}

// GetNavigation renders the sidebar for ?path=&variant=, badged with the
// waiting count of each stage.
func (h *DashboardHandler) GetNavigation(c *gin.Context) {
	variant, err := navigation.ParseVariant(c.Query("variant"))
	if err != nil {
		middlewares.HttpError(c, err.Error(), http.StatusBadRequest, middlewares.CodeValidation)
		return
	}
	path := c.DefaultQuery("path", "/dashboard")

	badges := make(map[string]int)
	for _, stage := range h.queue.Stats(c.Request.Context()).Stages {
		badges[string(stage.Stage)] = stage.Waiting
	}

	resp := navigationResponse{Path: path, Variant: variant, Items: navigation.Sidebar(path, variant, badges)}
	if route, found := navigation.Current(path); found {
		resp.Current = &route
	}
	ok(c, resp)
}
