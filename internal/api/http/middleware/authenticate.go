package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/api/http/response"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
)

const bearerScheme = "Bearer"

// Authenticate validates bearer tokens and injects the caller identity into the request context.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a token with 401 and requests with a bad one with 403.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.authenticate(c.GetHeader("Authorization"))
		if err != nil {
			m.logger.Debug("Authenticate middleware: rejected request",
				"path", c.Request.URL.Path,
				"error", err.Error())
			response.Error(c, m.logger, err)
			return
		}

		c.Request = c.Request.WithContext(m.contextManager.SetIdentityToContext(c.Request.Context(), identity))
		c.Next()
	}
}

func (m *Authenticate) authenticate(header string) (model.Identity, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Identity{}, apperr.NewErrMissingAuthorizationToken()
	}
	if !strings.EqualFold(scheme, bearerScheme) {
		return model.Identity{}, apperr.NewErrInvalidAuthorizationToken()
	}

	identity, err := m.tokenManager.ParseToken(token)
	if err != nil {
		return model.Identity{}, apperr.NewErrInvalidAuthorizationToken()
	}

	return identity, nil
}
