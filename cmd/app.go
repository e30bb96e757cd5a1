package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/dtroode/projecthub-server/internal/api/http/context"
	"github.com/dtroode/projecthub-server/internal/api/http/router"
	httpserver "github.com/dtroode/projecthub-server/internal/api/http/server"
	"github.com/dtroode/projecthub-server/internal/authz"
	"github.com/dtroode/projecthub-server/internal/config"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
	"github.com/dtroode/projecthub-server/internal/password"
	"github.com/dtroode/projecthub-server/internal/repository/memory"
	"github.com/dtroode/projecthub-server/internal/repository/postgres"
	"github.com/dtroode/projecthub-server/internal/server"
	"github.com/dtroode/projecthub-server/internal/service"
	"github.com/dtroode/projecthub-server/internal/storage/local"
	minioStorage "github.com/dtroode/projecthub-server/internal/storage/minio"
	s3Storage "github.com/dtroode/projecthub-server/internal/storage/s3"
	"github.com/dtroode/projecthub-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users    model.UserStore
	projects model.ProjectStore
	close    func() error
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	fileStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return fmt.Errorf("failed to load authorization policy: %w", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuth(st.users, password.NewBcrypt(bcrypt.DefaultCost), tokenManager, log)
	projectService := service.NewProject(st.projects, fileStorage, log)

	gin.SetMode(gin.ReleaseMode)
	r := router.New(authService, projectService, tokenManager, enforcer, httpctx.NewManager(), log, router.Options{
		MaxUploadBytes:     cfg.HTTP.MaxUploadMB << 20,
		StaticDir:          cfg.HTTP.StaticDir,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		log.Info("Starting server on", "address", s.Address(),
			"https", cfg.HTTP.EnableHTTPS,
			"store", cfg.Store.Backend,
			"upload", cfg.Upload.Backend,
			"version", buildVersion)
		serveErr <- s.Start(sl)
	}(srv)

	select {
	case <-ctx.Done():
		log.Info("received interruption signal, shutting down")
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return errors.New("server stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	log.Info("shutdown complete")

	return nil
}

func runMigrate(parent context.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// NewConnection applies pending migrations before returning.
	conn, err := postgres.NewConnection(parent, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info("migrations applied")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:    postgres.NewUserRepository(conn.DB),
			projects: postgres.NewProjectRepository(conn.DB),
			close:    conn.Close,
		}, nil
	default:
		return stores{
			users:    memory.NewUserRepository(),
			projects: memory.NewProjectRepository(),
			close:    func() error { return nil },
		}, nil
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	switch cfg.Upload.Backend {
	case config.UploadMinio:
		s, err := minioStorage.NewStorage(ctx, cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		return s, nil
	case config.UploadS3:
		s, err := s3Storage.NewStorage(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s, nil
	default:
		return local.NewStorage(cfg.Upload.Dir), nil
	}
}
