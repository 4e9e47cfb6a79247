package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vistago/vistago-api/internal/service"
	"github.com/vistago/vistago-api/internal/util"
)

type FavoriteHandler struct {
	favorites    *service.FavoriteService
	destinations *service.DestinationService
}

func RegisterFavorites(e *echo.Echo, auth *service.AuthService, favorites *service.FavoriteService, destinations *service.DestinationService) {
	handler := &FavoriteHandler{
		favorites:    favorites,
		destinations: destinations,
	}

	protected := e.Group("/api/v1/users/me/favorites", RequireAuth(auth))
	protected.GET("", handler.listFavorites)
	protected.PUT("/:id", handler.addFavorite)
	protected.DELETE("/:id", handler.removeFavorite)
	protected.POST("/:id/toggle", handler.toggleFavorite)
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	items := h.favorites.ListDestinations()
	return c.JSON(http.StatusOK, util.Envelope{
		"ids":          h.favorites.List(),
		"destinations": items,
		"count":        len(items),
	})
}

// addFavorite is idempotent: saving an already-saved destination succeeds.
func (h *FavoriteHandler) addFavorite(c echo.Context) error {
	id, err := h.destinationID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}

	if err := h.favorites.Add(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not update favorites"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination_id": id,
		"favorite":       true,
	})
}

// removeFavorite is idempotent: removing an absent id succeeds.
func (h *FavoriteHandler) removeFavorite(c echo.Context) error {
	id, err := h.destinationID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}

	if err := h.favorites.Remove(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not update favorites"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination_id": id,
		"favorite":       false,
	})
}

func (h *FavoriteHandler) toggleFavorite(c echo.Context) error {
	id, err := h.destinationID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}

	if err := h.favorites.Toggle(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not update favorites"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination_id": id,
		"favorite":       h.favorites.IsFavorite(id),
	})
}

// destinationID validates the path id against the catalog so favorites can
// only reference destinations that exist.
func (h *FavoriteHandler) destinationID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := h.destinations.Get(id); err != nil {
		return "", service.ErrDestinationNotFound
	}
	return id, nil
}
