package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopLens/internal/cache"
	"shopLens/pkg/logger"
)

type CacheHandler struct {
	store cache.Store
}

func NewCacheHandler(store cache.Store) *CacheHandler {
	return &CacheHandler{store: store}
}

func (h *CacheHandler) Stats(c echo.Context) error {
	stats, err := h.store.Stats(c.Request().Context())
	if err != nil {
		logger.Error("Failed to read cache stats", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *CacheHandler) Clear(c echo.Context) error {
	if err := h.store.Clear(c.Request().Context()); err != nil {
		logger.Error("Failed to clear cache", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "cache cleared",
	})
}
