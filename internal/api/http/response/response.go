// Package response writes the JSON envelopes shared by every API endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
)

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error maps err to a status and message, writes the error envelope and aborts.
// Typed errors keep their status; store misses become 404; anything else is a logged 500.
func Error(c *gin.Context, log *logger.Logger, err error) {
	status, message := classify(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err.Error())
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{Success: false, Message: message})
}

func classify(err error) (int, string) {
	if apiErr, ok := apperr.As(err); ok && apiErr.Kind != apperr.KindInternal {
		return apiErr.HTTPCode, apiErr.Message
	}
	if errors.Is(err, model.ErrNotFound) {
		notFound := apperr.NewErrRouteNotFound()
		return notFound.HTTPCode, notFound.Message
	}

	internal := apperr.NewErrInternal(err)
	return internal.HTTPCode, internal.Message
}
