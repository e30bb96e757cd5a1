package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dtroode/projecthub-server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects []model.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) Create(_ context.Context, project model.Project) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(project.ID) >= 0 {
		return model.Project{}, model.ErrAlreadyExists
	}

	project = clone(project)
	r.projects = append(r.projects, project)

	return clone(project), nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Project{}, model.ErrNotFound
	}
	return clone(r.projects[idx]), nil
}

func (r *ProjectRepository) List(_ context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if filter.Match(p) {
			result = append(result, clone(p))
		}
	}
	return result, nil
}

func (r *ProjectRepository) UpdateStatus(_ context.Context, id string, status string) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Project{}, model.ErrNotFound
	}
	r.projects[idx].Status = status
	return clone(r.projects[idx]), nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Project{}, model.ErrNotFound
	}
	deleted := r.projects[idx]
	r.projects = slices.Delete(r.projects, idx, idx+1)
	return deleted, nil
}

// indexOf must be called with mu held.
func (r *ProjectRepository) indexOf(id string) int {
	return slices.IndexFunc(r.projects, func(p model.Project) bool { return p.ID == id })
}

// clone detaches slices so callers cannot mutate stored state.
func clone(p model.Project) model.Project {
	p.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	p.Files = append(make([]string, 0, len(p.Files)), p.Files...)
	return p
}
