package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/model"
	"github.com/dtroode/projecthub-server/internal/testutil"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation", err: apperr.NewErrMissingFields(), wantStatus: 400, wantMessage: "All fields are required"},
		{name: "conflict", err: apperr.NewErrEmailIsTaken(), wantStatus: 400, wantMessage: "User already exists"},
		{name: "auth", err: apperr.NewErrInvalidCredentials(), wantStatus: 401, wantMessage: "Invalid credentials"},
		{name: "missing token", err: apperr.NewErrMissingAuthorizationToken(), wantStatus: 401, wantMessage: "Authentication required"},
		{name: "invalid token", err: apperr.NewErrInvalidAuthorizationToken(), wantStatus: 403, wantMessage: "Invalid token"},
		{name: "forbidden", err: apperr.NewErrForbidden(), wantStatus: 403, wantMessage: "Access denied"},
		{name: "wrapped typed", err: fmt.Errorf("ctx: %w", apperr.NewErrProjectNotFound("p")), wantStatus: 404, wantMessage: "Project not found"},
		{name: "store miss", err: fmt.Errorf("lookup: %w", model.ErrNotFound), wantStatus: 404, wantMessage: "Not found"},
		{name: "typed internal", err: apperr.NewErrInternal(errors.New("x")), wantStatus: 500, wantMessage: "Internal server error"},
		{name: "unknown", err: errors.New("pq: connection refused"), wantStatus: 500, wantMessage: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			Error(c, testutil.MakeNoopLogger(), tt.err)

			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Len(t, c.Errors, 1)
		})
	}
}
