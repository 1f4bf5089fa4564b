package handler

import (
	"context"
	"net/http"
	"time"

	"kioku/internal/httpapi/dto"
	"kioku/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Summary)
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, recent, err := h.svc.Summary(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recentResponses := make([]dto.MediaItemResponse, 0, len(recent))
	for _, item := range recent {
		recentResponses = append(recentResponses, dto.FromModelToResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recently_updated": recentResponses,
	})
}
