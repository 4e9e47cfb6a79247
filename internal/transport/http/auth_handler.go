package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/media"
	"github.com/vistago/vistago-api/internal/service"
	"github.com/vistago/vistago-api/internal/util"
)

type AuthHandler struct {
	auth    *service.AuthService
	avatars *media.AvatarCache // nil when the cache is disabled
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, avatars *media.AvatarCache) {
	handler := &AuthHandler{auth: auth, avatars: avatars}

	group := e.Group("/api/v1/auth")
	group.POST("/login", handler.login)
	group.POST("/register", handler.register)
	group.POST("/logout", handler.logout, RequireAuth(auth))
	group.GET("/me", handler.me, RequireAuth(auth))

	e.GET("/api/v1/users/me/avatar", handler.avatar, RequireAuth(auth))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("username and password are required"))
	}

	user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, util.Error("login failed"))
	}

	return c.JSON(http.StatusOK, AuthSessionResponse{
		Token: h.auth.Token(),
		User:  toAuthUser(*user),
	})
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("username, password and email are required"))
	}

	user, err := h.auth.Register(c.Request().Context(), domain.Registration{
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationFailed):
			return c.JSON(http.StatusBadGateway, util.Error("registration failed"))
		default:
			return c.JSON(http.StatusUnauthorized, util.Error("login failed"))
		}
	}

	return c.JSON(http.StatusCreated, AuthSessionResponse{
		Token: h.auth.Token(),
		User:  toAuthUser(*user),
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not clear session"))
	}
	return c.JSON(http.StatusOK, util.Success())
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Data("user", toAuthUser(*user)))
}

// avatar redirects to the cached copy of the user's avatar image.
func (h *AuthHandler) avatar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if h.avatars == nil {
		return c.JSON(http.StatusNotFound, util.Error("avatar cache disabled"))
	}

	url, err := h.avatars.URL(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, media.ErrAvatarNotCached) {
			return c.JSON(http.StatusNotFound, util.Error("avatar not cached"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load avatar"))
	}
	return c.Redirect(http.StatusFound, url)
}
