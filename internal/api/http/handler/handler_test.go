package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/projecthub-server/internal/api/http/context"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/mocks"
	"github.com/dtroode/projecthub-server/internal/model"
	"github.com/dtroode/projecthub-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withIdentity(ctxMgr model.ContextManager, identity model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxMgr.SetIdentityToContext(c.Request.Context(), identity))
	}
}

func TestAuth_Register(t *testing.T) {
	session := model.Session{
		User:  model.PublicUser{ID: "u-1", Name: "Alice", Email: "alice@example.com", Role: model.RoleUser},
		Token: "tok",
	}

	t.Run("created", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Register", mock.Anything, model.RegisterParams{
			Name: "Alice", Email: "alice@example.com", Password: "pw", Role: model.RoleUser,
		}).Return(session, nil)

		r := gin.New()
		r.POST("/register", NewAuth(svc, testutil.MakeNoopLogger()).Register)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/register",
			strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"pw","role":"user"}`)))

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "User registered successfully", body["message"])
		assert.Equal(t, "tok", body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "u-1", user["id"])
		assert.NotContains(t, user, "password")
	})

	t.Run("malformed json", func(t *testing.T) {
		r := gin.New()
		r.POST("/register", NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger()).Register)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decode(t, w)["message"])
	})

	t.Run("empty body reaches validation", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Register", mock.Anything, model.RegisterParams{}).Return(model.Session{}, apperr.NewErrMissingFields())

		r := gin.New()
		r.POST("/register", NewAuth(svc, testutil.MakeNoopLogger()).Register)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/register", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "All fields are required", body["message"])
	})
}

func TestAuth_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "a@b.co", "pw").Return(model.Session{Token: "tok"}, nil)

		r := gin.New()
		r.POST("/login", NewAuth(svc, testutil.MakeNoopLogger()).Login)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"pw"}`)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Login successful", decode(t, w)["message"])
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "a@b.co", "pw").Return(model.Session{}, errors.New("db: connection refused"))

		r := gin.New()
		r.POST("/login", NewAuth(svc, testutil.MakeNoopLogger()).Login)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"pw"}`)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decode(t, w)["message"])
	})
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/projects", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProject_Submit(t *testing.T) {
	identity := model.Identity{ID: "u-1", Role: model.RoleUser}
	ctxMgr := httpctx.NewManager()

	t.Run("multipart", func(t *testing.T) {
		svc := mocks.NewProjectService(t)
		svc.On("Submit", mock.Anything, mock.MatchedBy(func(p model.SubmitProjectParams) bool {
			if p.UserID != "u-1" || p.Title != "Robot" || p.Tags != "a, b" || len(p.Files) != 1 {
				return false
			}
			rc, err := p.Files[0].Open()
			if err != nil {
				return false
			}
			defer rc.Close()
			data, _ := io.ReadAll(rc)
			return p.Files[0].Name == "plan.txt" && string(data) == "plan"
		})).Return(model.Project{ID: "p-1", Files: []string{"1-plan.txt"}}, nil)

		r := gin.New()
		r.POST("/projects", withIdentity(ctxMgr, identity), NewProject(svc, ctxMgr, testutil.MakeNoopLogger()).Submit)

		w := serve(r, multipartRequest(t, map[string]string{"title": "Robot", "tags": "a, b"}, map[string]string{"plan.txt": "plan"}))

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Project submitted successfully", body["message"])
		assert.Equal(t, "p-1", body["project"].(map[string]any)["id"])
	})

	t.Run("json body", func(t *testing.T) {
		svc := mocks.NewProjectService(t)
		svc.On("Submit", mock.Anything, model.SubmitProjectParams{
			UserID: "u-1", Title: "T", Category: "art", Files: nil,
		}).Return(model.Project{ID: "p-2"}, nil)

		r := gin.New()
		r.POST("/projects", withIdentity(ctxMgr, identity), NewProject(svc, ctxMgr, testutil.MakeNoopLogger()).Submit)

		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"title":"T","category":"art"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("malformed multipart", func(t *testing.T) {
		r := gin.New()
		r.POST("/projects", withIdentity(ctxMgr, identity), NewProject(mocks.NewProjectService(t), ctxMgr, testutil.MakeNoopLogger()).Submit)

		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("--nope\r\ngarbage"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		w := serve(r, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid multipart body", decode(t, w)["message"])
	})

	t.Run("no identity", func(t *testing.T) {
		r := gin.New()
		r.POST("/projects", NewProject(mocks.NewProjectService(t), ctxMgr, testutil.MakeNoopLogger()).Submit)

		w := serve(r, multipartRequest(t, map[string]string{"title": "x"}, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := mocks.NewProjectService(t)
		svc.On("Submit", mock.Anything, mock.Anything).Return(model.Project{}, errors.New("disk full"))

		r := gin.New()
		r.POST("/projects", withIdentity(ctxMgr, identity), NewProject(svc, ctxMgr, testutil.MakeNoopLogger()).Submit)

		w := serve(r, multipartRequest(t, nil, map[string]string{"a.bin": "x"}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestProject_ListAndGet(t *testing.T) {
	svc := mocks.NewProjectService(t)
	svc.On("List", mock.Anything, model.ProjectFilter{Category: "art", Tag: "x"}).Return([]model.Project{{ID: "p-1"}}, nil)
	svc.On("List", mock.Anything, model.ProjectFilter{}).Return([]model.Project{}, nil)
	svc.On("Get", mock.Anything, "p-1").Return(model.Project{ID: "p-1"}, nil)
	svc.On("Get", mock.Anything, "nope").Return(model.Project{}, apperr.NewErrProjectNotFound("nope"))

	h := NewProject(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
	r := gin.New()
	r.GET("/projects", h.List)
	r.GET("/projects/:id", h.Get)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/projects?category=art&tag=x", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["projects"], 1)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["projects"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/projects/p-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "message")
	assert.Equal(t, "p-1", body["project"].(map[string]any)["id"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/projects/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", decode(t, w)["message"])
}

func TestProject_File(t *testing.T) {
	svc := mocks.NewProjectService(t)
	svc.On("OpenFile", mock.Anything, "1-a.png").Return(io.NopCloser(strings.NewReader("png")), nil)
	svc.On("OpenFile", mock.Anything, "missing").Return(nil, apperr.NewErrFileNotFound("missing"))

	r := gin.New()
	r.GET("/files/:name", NewProject(svc, httpctx.NewManager(), testutil.MakeNoopLogger()).File)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/files/1-a.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "png", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/files/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", decode(t, w)["message"])
}

func TestProject_File_ActiveContentIsDownloaded(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{name: "1-page.html", contentType: "text/html; charset=utf-8"},
		{name: "1-logo.svg", contentType: "image/svg+xml"},
		{name: "1-blob", contentType: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewProjectService(t)
			svc.On("OpenFile", mock.Anything, tt.name).Return(io.NopCloser(strings.NewReader("<script>")), nil)

			r := gin.New()
			r.GET("/files/:name", NewProject(svc, httpctx.NewManager(), testutil.MakeNoopLogger()).File)

			w := serve(r, httptest.NewRequest(http.MethodGet, "/files/"+tt.name, nil))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, `attachment; filename=`+tt.name, w.Header().Get("Content-Disposition"))
		})
	}
}

func TestAdmin_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *mocks.ProjectService)
		wantStatus int
	}{
		{
			name: "updated",
			body: `{"status":"approved"}`,
			setup: func(svc *mocks.ProjectService) {
				svc.On("UpdateStatus", mock.Anything, "p-1", "approved").Return(model.Project{ID: "p-1", Status: "approved"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty string is a status",
			body: `{"status":""}`,
			setup: func(svc *mocks.ProjectService) {
				svc.On("UpdateStatus", mock.Anything, "p-1", "").Return(model.Project{ID: "p-1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{name: "missing status", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "no body", wantStatus: http.StatusBadRequest},
		{
			name: "unknown project",
			body: `{"status":"approved"}`,
			setup: func(svc *mocks.ProjectService) {
				svc.On("UpdateStatus", mock.Anything, "p-1", "approved").Return(model.Project{}, apperr.NewErrProjectNotFound("p-1"))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewProjectService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			r := gin.New()
			r.PUT("/admin/projects/:id", NewAdmin(svc, testutil.MakeNoopLogger()).UpdateStatus)

			var reqBody io.Reader
			if tt.body != "" {
				reqBody = strings.NewReader(tt.body)
			}
			w := serve(r, httptest.NewRequest(http.MethodPut, "/admin/projects/p-1", reqBody))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAdmin_ListAndDelete(t *testing.T) {
	svc := mocks.NewProjectService(t)
	svc.On("ListAll", mock.Anything).Return([]model.Project{{ID: "a"}, {ID: "b"}}, nil)
	svc.On("Delete", mock.Anything, "a").Return(nil)
	svc.On("Delete", mock.Anything, "zzz").Return(apperr.NewErrProjectNotFound("zzz"))

	h := NewAdmin(svc, testutil.MakeNoopLogger())
	r := gin.New()
	r.GET("/admin/projects", h.List)
	r.DELETE("/admin/projects/:id", h.Delete)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["projects"], 2)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/admin/projects/a", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project deleted successfully", decode(t, w)["message"])

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/admin/projects/zzz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": true, "status": "ok"}, decode(t, w))
}
