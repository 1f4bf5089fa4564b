package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kioku/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ExternalHandler struct {
	svc service.ExternalService
}

func NewExternalHandler(svc service.ExternalService) *ExternalHandler {
	return &ExternalHandler{svc: svc}
}

func (h *ExternalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.GET("/seasonal", h.Seasonal)
	rg.GET("/anime/:malId", h.AnimeDetail)
	rg.GET("/manga/:malId", h.MangaDetail)
	rg.GET("/anime/:malId/recommendations", h.AnimeRecommendations)
	rg.GET("/manga/:malId/recommendations", h.MangaRecommendations)
}

// Search proxies catalog lookups to the metadata provider.
// GET /api/external/search?type=anime&q=naruto
func (h *ExternalHandler) Search(c *gin.Context) {
	kind := c.DefaultQuery("type", "anime")
	if kind == "manhwa" {
		// The provider has no manhwa category; manga covers it.
		kind = "manga"
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	results, err := h.svc.Search(ctx, kind, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Seasonal returns the currently airing season.
// GET /api/external/seasonal
func (h *ExternalHandler) Seasonal(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	results, err := h.svc.Seasonal(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// AnimeDetail returns the full catalog record for one anime.
// GET /api/external/anime/:malId
func (h *ExternalHandler) AnimeDetail(c *gin.Context) {
	h.detail(c, "anime")
}

// MangaDetail returns the full catalog record for one manga.
// GET /api/external/manga/:malId
func (h *ExternalHandler) MangaDetail(c *gin.Context) {
	h.detail(c, "manga")
}

func (h *ExternalHandler) detail(c *gin.Context, kind string) {
	malID, ok := parseMalID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	entry, err := h.svc.Lookup(ctx, kind, malID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// AnimeRecommendations suggests anime similar to the given one.
// GET /api/external/anime/:malId/recommendations
func (h *ExternalHandler) AnimeRecommendations(c *gin.Context) {
	h.recommendations(c, "anime")
}

// MangaRecommendations suggests manga similar to the given one.
// GET /api/external/manga/:malId/recommendations
func (h *ExternalHandler) MangaRecommendations(c *gin.Context) {
	h.recommendations(c, "manga")
}

func (h *ExternalHandler) recommendations(c *gin.Context, kind string) {
	malID, ok := parseMalID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	results, err := h.svc.Recommendations(ctx, kind, malID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func parseMalID(c *gin.Context) (int64, bool) {
	malID, err := strconv.ParseInt(c.Param("malId"), 10, 64)
	if err != nil || malID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mal id"})
		return 0, false
	}
	return malID, true
}
