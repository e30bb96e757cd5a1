package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/projecthub-server/internal/model"
)

const projectColumns = `id, title, description, category, tags, files, video, status, user_id, created_at`

var _ model.ProjectStore = (*ProjectRepository)(nil)

type ProjectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	tags, err := encodeList(project.Tags)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	files, err := encodeList(project.Files)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to encode files: %w", err)
	}

	query := `INSERT INTO projects (id, title, description, category, tags, files, video, status, user_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + projectColumns

	saved, err := scanProject(r.db.QueryRowContext(ctx, query,
		project.ID, project.Title, project.Description, project.Category, tags, files,
		project.Video, project.Status, project.UserID, project.CreatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Project{}, model.ErrAlreadyExists
		}
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return saved, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE ($1 = '' OR category = $1)
			    AND ($2 = '' OR tags @> jsonb_build_array($2::text))
			  ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, filter.Category, filter.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status string) (model.Project, error) {
	query := `UPDATE projects SET status = $2 WHERE id = $1 RETURNING ` + projectColumns

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to update project status: %w", err)
	}

	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (model.Project, error) {
	query := `DELETE FROM projects WHERE id = $1 RETURNING ` + projectColumns

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to delete project: %w", err)
	}

	return project, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (model.Project, error) {
	var (
		project     model.Project
		tags, files []byte
	)
	err := row.Scan(
		&project.ID, &project.Title, &project.Description, &project.Category,
		&tags, &files, &project.Video, &project.Status, &project.UserID, &project.CreatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	if project.Tags, err = decodeList(tags); err != nil {
		return model.Project{}, fmt.Errorf("failed to decode tags: %w", err)
	}
	if project.Files, err = decodeList(files); err != nil {
		return model.Project{}, fmt.Errorf("failed to decode files: %w", err)
	}

	return project, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw []byte) ([]string, error) {
	items := []string{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
