package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/service"
	"github.com/vistago/vistago-api/internal/util"
)

type ThemeHandler struct {
	theme *service.ThemeService
}

func RegisterTheme(e *echo.Echo, theme *service.ThemeService) {
	handler := &ThemeHandler{theme: theme}

	group := e.Group("/api/v1/users/me/theme")
	group.GET("", handler.getTheme)
	group.PUT("", handler.setTheme)
}

func (h *ThemeHandler) getTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Envelope{
		"mode":    h.theme.Mode(),
		"scheme":  h.theme.EffectiveScheme(),
		"is_dark": h.theme.IsDark(),
	})
}

func (h *ThemeHandler) setTheme(c echo.Context) error {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	mode := domain.ThemeMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if err := h.theme.SetMode(c.Request().Context(), mode); err != nil {
		if errors.Is(err, service.ErrInvalidThemeMode) {
			return c.JSON(http.StatusBadRequest, util.Error("mode must be light, dark, or system"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not save theme preference"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"mode":    h.theme.Mode(),
		"scheme":  h.theme.EffectiveScheme(),
		"is_dark": h.theme.IsDark(),
	})
}
