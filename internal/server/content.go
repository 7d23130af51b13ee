package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avaldezm/newsight/capture"
)

// maxContentChars bounds extracted article text, matching what the analysis
// prompt can reasonably absorb.
const maxContentChars = 2000

// ContentHandler serves full-article text extraction for deep analysis. Only
// registered when capture is enabled.
type ContentHandler struct {
	Capture *capture.Service
}

func (h *ContentHandler) Register(g *echo.Group) {
	g.POST("/content", h.extract)
}

func (h *ContentHandler) extract(c echo.Context) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `the "url" field is required`)
	}

	text, err := h.Capture.ExtractContent(c.Request().Context(), req.URL, maxContentChars)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"url": req.URL, "content": text},
	})
}
