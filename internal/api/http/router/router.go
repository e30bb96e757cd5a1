package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/api/http/handler"
	"github.com/dtroode/projecthub-server/internal/api/http/middleware"
	"github.com/dtroode/projecthub-server/internal/api/http/response"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/authz"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/metrics"
	"github.com/dtroode/projecthub-server/internal/model"
)

// Options tunes the HTTP surface.
type Options struct {
	// MaxUploadBytes caps API request bodies and sizes the in-memory multipart buffer.
	MaxUploadBytes int64
	// StaticDir, when set, is served for non-API paths.
	StaticDir          string
	CORSAllowedOrigins []string
}

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService    handler.AuthService
	projectService handler.ProjectService
	tokenManager   model.TokenManager
	authorizer     model.Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
	opts           Options
}

func New(
	authService handler.AuthService,
	projectService handler.ProjectService,
	tokenManager model.TokenManager,
	authorizer model.Authorizer,
	contextManager model.ContextManager,
	logger *logger.Logger,
	opts Options,
) *Router {
	return &Router{
		authService:    authService,
		projectService: projectService,
		tokenManager:   tokenManager,
		authorizer:     authorizer,
		contextManager: contextManager,
		logger:         logger,
		opts:           opts,
	}
}

// Register builds the engine with every route and middleware attached.
func (r *Router) Register() *gin.Engine {
	e := gin.New()
	if r.opts.MaxUploadBytes > 0 {
		e.MaxMultipartMemory = r.opts.MaxUploadBytes
	}

	e.Use(
		middleware.Recovery(r.logger),
		middleware.NewLogging(r.logger).Handle(),
		metrics.Middleware(),
		middleware.CORS(r.opts.CORSAllowedOrigins),
	)

	e.GET("/health", handler.Health)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")
	if r.opts.MaxUploadBytes > 0 {
		api.Use(middleware.BodyLimit(r.opts.MaxUploadBytes))
	}

	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger).Handle()
	authorize := middleware.NewAuthorize(r.authorizer, r.contextManager, r.logger)

	r.registerAuthRoutes(api)
	r.registerProjectRoutes(api, authenticate, authorize)
	r.registerAdminRoutes(api, authenticate, authorize)

	e.NoRoute(r.noRoute)

	return e
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup) {
	h := handler.NewAuth(r.authService, r.logger)

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
}

func (r *Router) registerProjectRoutes(api *gin.RouterGroup, authenticate gin.HandlerFunc, authorize *middleware.Authorize) {
	h := handler.NewProject(r.projectService, r.contextManager, r.logger)

	api.GET("/projects", h.List)
	api.GET("/projects/:id", h.Get)
	api.GET("/files/:name", h.File)
	api.POST("/projects",
		authenticate,
		authorize.Require(authz.ResourceProjects, authz.ActionSubmit),
		h.Submit,
	)
}

func (r *Router) registerAdminRoutes(api *gin.RouterGroup, authenticate gin.HandlerFunc, authorize *middleware.Authorize) {
	h := handler.NewAdmin(r.projectService, r.logger)

	admin := api.Group("/admin",
		authenticate,
		authorize.Require(authz.ResourceProjects, authz.ActionModerate),
	)
	admin.GET("/projects", h.List)
	admin.PUT("/projects/:id", h.UpdateStatus)
	admin.DELETE("/projects/:id", h.Delete)
}

// noRoute serves the static frontend for non-API GET requests when configured,
// otherwise answers with the JSON 404 envelope.
func (r *Router) noRoute(c *gin.Context) {
	if file, ok := r.staticFile(c.Request); ok {
		c.File(file)
		return
	}

	response.Error(c, r.logger, apperr.NewErrRouteNotFound())
}

func (r *Router) staticFile(req *http.Request) (string, bool) {
	if r.opts.StaticDir == "" {
		return "", false
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return "", false
	}

	clean := path.Clean("/" + req.URL.Path)
	if clean == "/api" || strings.HasPrefix(clean, "/api/") {
		return "", false
	}

	file := filepath.Join(r.opts.StaticDir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		file = filepath.Join(file, "index.html")
		if info, err = os.Stat(file); err != nil || info.IsDir() {
			return "", false
		}
	}

	return file, true
}
