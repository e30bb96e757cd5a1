package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
	"github.com/dtroode/projecthub-server/internal/model"
)

type Project struct {
	projectStore model.ProjectStore
	storage      model.Storage
	logger       *logger.Logger
	now          func() time.Time
}

func NewProject(
	projectStore model.ProjectStore,
	storage model.Storage,
	logger *logger.Logger,
) *Project {
	return &Project{
		projectStore: projectStore,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit stores the attached files and creates a pending project owned by params.UserID.
// Files already written are removed again if a later step fails.
func (s *Project) Submit(ctx context.Context, params model.SubmitProjectParams) (model.Project, error) {
	s.logger.Debug("Project service: submitting project",
		"user_id", params.UserID,
		"files", len(params.Files))

	stored := make([]string, 0, len(params.Files))
	for _, upload := range params.Files {
		key := fileKey(s.now(), upload.Name)
		if err := s.store(ctx, key, upload); err != nil {
			s.logger.Error("Project service: failed to store file",
				"user_id", params.UserID,
				"file", upload.Name,
				"error", err.Error())
			s.removeFiles(ctx, stored)
			return model.Project{}, fmt.Errorf("failed to store file %s: %w", upload.Name, err)
		}
		stored = append(stored, key)
	}

	project, err := s.projectStore.Create(ctx, model.Project{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Tags:        splitTags(params.Tags),
		Files:       stored,
		Video:       params.Video,
		Status:      model.StatusPending,
		UserID:      params.UserID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("Project service: failed to create project",
			"user_id", params.UserID,
			"error", err.Error())
		s.removeFiles(ctx, stored)
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project service: project submitted",
		"project_id", project.ID,
		"user_id", project.UserID)

	return project, nil
}

// List returns projects matching filter in submission order.
func (s *Project) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	projects, err := s.projectStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *Project) Get(ctx context.Context, id string) (model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apperr.NewErrProjectNotFound(id)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}
	return project, nil
}

// ListAll returns every project regardless of status.
func (s *Project) ListAll(ctx context.Context) ([]model.Project, error) {
	return s.List(ctx, model.ProjectFilter{})
}

func (s *Project) UpdateStatus(ctx context.Context, id string, status string) (model.Project, error) {
	project, err := s.projectStore.UpdateStatus(ctx, id, status)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apperr.NewErrProjectNotFound(id)
	}
	if err != nil {
		s.logger.Error("Project service: failed to update status",
			"project_id", id,
			"error", err.Error())
		return model.Project{}, fmt.Errorf("failed to update project status: %w", err)
	}

	s.logger.Info("Project service: status updated",
		"project_id", id,
		"status", status)

	return project, nil
}

// Delete removes the project and then, best effort, its stored files.
func (s *Project) Delete(ctx context.Context, id string) error {
	project, err := s.projectStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apperr.NewErrProjectNotFound(id)
	}
	if err != nil {
		s.logger.Error("Project service: failed to delete project",
			"project_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.removeFiles(ctx, project.Files)

	s.logger.Info("Project service: project deleted",
		"project_id", id)

	return nil
}

// OpenFile streams a stored upload by its generated name.
func (s *Project) OpenFile(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, filepath.Base(name))
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.NewErrFileNotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return rc, nil
}

func (s *Project) store(ctx context.Context, key string, upload model.Upload) error {
	rc, err := upload.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer rc.Close()

	return s.storage.Upload(ctx, key, rc, upload.Size, upload.ContentType)
}

func (s *Project) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Project service: failed to remove stored file",
				"file", key,
				"error", err.Error())
		}
	}
}

// fileKey names a stored upload "<unix millis>-<base name>".
func fileKey(now time.Time, original string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filepath.Base(original))
}

// splitTags splits a comma separated list and trims each entry.
func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
