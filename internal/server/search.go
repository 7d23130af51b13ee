package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avaldezm/newsight/conversation"
	"github.com/avaldezm/newsight/search"
)

// SearchService is the slice of the search session the handlers need.
type SearchService interface {
	Search(ctx context.Context, query string, contextEntries []string, userID string) (search.Result, error)
	Stats() conversation.Stats
	Reset()
}

// SearchHandler serves the search pipeline endpoints.
type SearchHandler struct {
	Session SearchService
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("/search", h.search)
	g.POST("/reset", h.reset)
	g.GET("/stats", h.stats)
}

func (h *SearchHandler) search(c echo.Context) error {
	var req struct {
		Query   string   `json:"query"`
		Context []string `json:"context"`
		UserID  string   `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" {
		req.UserID = "default"
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `the "query" field is required and must be a string`)
	}

	result, err := h.Session.Search(c.Request().Context(), req.Query, req.Context, req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"results":       result.Documents,
			"suggestions":   result.Suggestions,
			"query":         req.Query,
			"context":       req.Context,
			"analysis":      result.Report,
			"userInterests": result.Interests,
		},
	})
}

func (h *SearchHandler) reset(c echo.Context) error {
	h.Session.Reset()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "conversation tree reset",
	})
}

func (h *SearchHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   h.Session.Stats(),
	})
}
