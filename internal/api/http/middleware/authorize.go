package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/api/http/response"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
)

// Authorize checks the authenticated caller's role against the policy.
// It must run after Authenticate.
type Authorize struct {
	authorizer     model.Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthorize(authorizer model.Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{authorizer: authorizer, contextManager: contextManager, logger: logger}
}

// Require lets the request through only if the caller's role may perform action on resource.
func (m *Authorize) Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := m.contextManager.GetIdentityFromContext(c.Request.Context())
		if !ok {
			response.Error(c, m.logger, apperr.NewErrMissingAuthorizationToken())
			return
		}

		allowed, err := m.authorizer.Authorize(identity.Role, resource, action)
		if err != nil {
			response.Error(c, m.logger, err)
			return
		}
		if !allowed {
			m.logger.Info("Authorize middleware: access denied",
				"user_id", identity.ID,
				"role", identity.Role,
				"resource", resource,
				"action", action)
			response.Error(c, m.logger, apperr.NewErrForbidden())
			return
		}

		c.Next()
	}
}
