package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avaldezm/newsight/interests"
)

// InterestsHandler serves the per-user interest CRUD endpoints.
type InterestsHandler struct {
	Store interests.Store
}

func (h *InterestsHandler) Register(g *echo.Group) {
	g.GET("", h.get)
	g.POST("/add", h.add)
	g.POST("/remove", h.remove)
	g.POST("/set", h.set)
	g.POST("/clear", h.clear)
}

func userID(v string) string {
	if v == "" {
		return "default"
	}
	return v
}

func (h *InterestsHandler) get(c echo.Context) error {
	uid := userID(c.QueryParam("userId"))
	list, err := h.Store.Get(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"interests": list},
	})
}

func (h *InterestsHandler) add(c echo.Context) error {
	var req struct {
		Interest string `json:"interest"`
		UserID   string `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Interest == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `the "interest" field is required`)
	}
	uid := userID(req.UserID)
	ctx := c.Request().Context()
	if err := h.Store.Add(ctx, uid, req.Interest); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	list, err := h.Store.Get(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": fmt.Sprintf("interest %q added", req.Interest),
		"data":    map[string]interface{}{"interests": list},
	})
}

func (h *InterestsHandler) remove(c echo.Context) error {
	var req struct {
		Interest string `json:"interest"`
		UserID   string `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Interest == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `the "interest" field is required`)
	}
	uid := userID(req.UserID)
	ctx := c.Request().Context()
	if err := h.Store.Remove(ctx, uid, req.Interest); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	list, err := h.Store.Get(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": fmt.Sprintf("interest %q removed", req.Interest),
		"data":    map[string]interface{}{"interests": list},
	})
}

func (h *InterestsHandler) set(c echo.Context) error {
	var req struct {
		Interests []string `json:"interests"`
		UserID    string   `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Interests == nil {
		return echo.NewHTTPError(http.StatusBadRequest, `the "interests" field must be an array`)
	}
	uid := userID(req.UserID)
	if err := h.Store.Set(c.Request().Context(), uid, req.Interests); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "interests updated",
		"data":    map[string]interface{}{"interests": req.Interests},
	})
}

func (h *InterestsHandler) clear(c echo.Context) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	uid := userID(req.UserID)
	if err := h.Store.Clear(c.Request().Context(), uid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "interests cleared",
		"data":    map[string]interface{}{"interests": []string{}},
	})
}
