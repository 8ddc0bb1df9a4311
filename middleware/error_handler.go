package middleware

import (
	"net/http"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON shape every error leaves the API in.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler converts errors attached to the gin context into structured
// JSON responses. Unrecognized errors are surfaced as a generic 500 so raw
// internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*apperrors.AppError); ok {
			log.Warnw("Request failed",
				"type", appError.Type,
				"message", appError.Message,
				"detail", appError.Detail,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", c.GetString(RequestIDKey),
			)

			c.AbortWithStatusJSON(appError.HTTPStatus, ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Details: appError.Detail,
			})
			return
		}

		log.Errorw("Unhandled error",
			"error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(RequestIDKey),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Type:    string(apperrors.ServerError),
			Message: "Internal server error",
		})
	}
}
