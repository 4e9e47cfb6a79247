package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/service"
	"github.com/vistago/vistago-api/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

func RegisterDestinations(e *echo.Echo, destinations *service.DestinationService) {
	handler := &DestinationHandler{destinations: destinations}

	group := e.Group("/api/v1/destinations")
	group.GET("", handler.listDestinations)
	group.GET("/featured", handler.featuredDestinations)
	group.GET("/popular", handler.popularDestinations)
	group.GET("/categories", handler.listCategories)
	group.GET("/:id", handler.getDestination)
}

// listDestinations answers the explore screen: free-text query, category
// filter, sort key.
func (h *DestinationHandler) listDestinations(c echo.Context) error {
	params, err := parseSearchParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	results := h.destinations.Search(params)
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": results,
		"count":        len(results),
	})
}

func (h *DestinationHandler) getDestination(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	dest, err := h.destinations.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("destination not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load destination"))
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *DestinationHandler) featuredDestinations(c echo.Context) error {
	n, err := parseCount(c, 3)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Data("destinations", h.destinations.Featured(n)))
}

func (h *DestinationHandler) popularDestinations(c echo.Context) error {
	n, err := parseCount(c, 3)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Data("destinations", h.destinations.Popular(n)))
}

func (h *DestinationHandler) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("categories", domain.Categories()))
}

func parseSearchParams(c echo.Context) (service.SearchParams, error) {
	params := service.SearchParams{
		Query: strings.TrimSpace(c.QueryParam("q")),
	}

	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" && raw != "all" {
		category := domain.Category(strings.ToLower(raw))
		if !category.Valid() {
			return service.SearchParams{}, fmt.Errorf("unknown category %q", raw)
		}
		params.Category = category
	}

	switch sort := strings.TrimSpace(c.QueryParam("sort")); sort {
	case "", string(service.SortByRating):
		params.Sort = service.SortByRating
	case string(service.SortByPrice):
		params.Sort = service.SortByPrice
	default:
		return service.SearchParams{}, fmt.Errorf("unknown sort %q", sort)
	}
	return params, nil
}

func parseCount(c echo.Context, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("count"))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	return n, nil
}
