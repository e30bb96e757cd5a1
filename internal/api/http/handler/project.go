package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/api/http/response"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/metrics"
	"github.com/dtroode/projecthub-server/internal/model"
)

// filesField is the multipart field carrying project attachments.
const filesField = "files"

// ProjectService defines project submission, browsing and moderation.
type ProjectService interface {
	Submit(ctx context.Context, params model.SubmitProjectParams) (model.Project, error)
	List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	UpdateStatus(ctx context.Context, id string, status string) (model.Project, error)
	Delete(ctx context.Context, id string) error
	OpenFile(ctx context.Context, name string) (io.ReadCloser, error)
}

type submitRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	Tags        string `json:"tags" form:"tags"`
	Video       string `json:"video" form:"video"`
}

type projectResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Project model.Project `json:"project"`
}

type projectsResponse struct {
	Success  bool            `json:"success"`
	Projects []model.Project `json:"projects"`
}

// Project handles the public and user-facing project endpoints.
type Project struct {
	projectService ProjectService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewProject(projectService ProjectService, contextManager model.ContextManager, logger *logger.Logger) *Project {
	return &Project{
		projectService: projectService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Submit handles POST /api/projects. It accepts multipart forms, and JSON or
// urlencoded bodies without attachments.
func (h *Project) Submit(c *gin.Context) {
	identity, ok := h.contextManager.GetIdentityFromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperr.NewErrMissingAuthorizationToken())
		return
	}

	req, files, err := h.readSubmission(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	project, err := h.projectService.Submit(c.Request.Context(), model.SubmitProjectParams{
		UserID:      identity.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Video:       req.Video,
		Files:       files,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	metrics.UploadedFilesTotal.Add(float64(len(project.Files)))

	c.JSON(http.StatusCreated, projectResponse{
		Success: true,
		Message: "Project submitted successfully",
		Project: project,
	})
}

// List handles GET /api/projects with optional category and tag filters.
func (h *Project) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), model.ProjectFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projectsResponse{Success: true, Projects: projects})
}

// Get handles GET /api/projects/:id.
func (h *Project) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse{Success: true, Project: project})
}

// File handles GET /api/files/:name and streams a stored attachment.
func (h *Project) File(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.projectService.OpenFile(c.Request.Context(), name)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	headers := map[string]string{"X-Content-Type-Options": "nosniff"}
	if !inlineMedia(contentType) {
		headers["Content-Disposition"] = mime.FormatMediaType("attachment", map[string]string{
			"filename": filepath.Base(name),
		})
	}

	c.DataFromReader(http.StatusOK, -1, contentType, rc, headers)
}

// inlineMedia reports whether a stored file may be rendered by the browser.
// Anything able to run script on the API origin (HTML, SVG) is downloaded instead.
func inlineMedia(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "video/") ||
		strings.HasPrefix(mediaType, "audio/")
}

func (h *Project) readSubmission(c *gin.Context) (submitRequest, []model.Upload, error) {
	var req submitRequest

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			h.logger.Info("Project handler: malformed multipart body",
				"error", err.Error())
			return req, nil, apperr.NewErrValidation("Invalid multipart body")
		}
		req = submitRequest{
			Title:       firstValue(form, "title"),
			Description: firstValue(form, "description"),
			Category:    firstValue(form, "category"),
			Tags:        firstValue(form, "tags"),
			Video:       firstValue(form, "video"),
		}
		return req, uploads(form.File[filesField]), nil
	case gin.MIMEJSON:
		if err := bindJSON(c, &req); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	default:
		if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, nil, apperr.NewErrValidation("Invalid request body")
		}
		return req, nil, nil
	}
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func uploads(headers []*multipart.FileHeader) []model.Upload {
	files := make([]model.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, model.Upload{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}
