package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
)

const requestIDKey = "http.request.id"

// registerLogging emits one structured entry per request. Each request gets a
// generated id so log lines can be correlated with client reports.
func registerLogging(e *echo.Echo, log logger.Logger) {
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := uuid.NewString()
			c.Set(requestIDKey, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	})

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.Username
			}

			requestID, _ := c.Get(requestIDKey).(string)

			if v.Error != nil {
				log.Warn("request",
					logger.String("request_id", requestID),
					logger.String("method", v.Method),
					logger.String("uri", v.URI),
					logger.Int("status", v.Status),
					logger.Int64("latency_ms", v.Latency.Milliseconds()),
					logger.String("user", userID),
					logger.Error(v.Error),
				)
				return nil
			}

			log.Info("request",
				logger.String("request_id", requestID),
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Int64("latency_ms", v.Latency.Milliseconds()),
				logger.String("user", userID),
			)
			return nil
		},
	}))
}
