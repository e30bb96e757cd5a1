package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/projecthub-server/internal/model"
)

func seedProjects(t *testing.T, repo *ProjectRepository, projects ...model.Project) {
	t.Helper()
	for _, p := range projects {
		_, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
	}
}

func ids(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestProjectRepository_ListFilters(t *testing.T) {
	repo := NewProjectRepository()
	seedProjects(t, repo,
		model.Project{ID: "1", Category: "art", Tags: []string{"x", "y"}},
		model.Project{ID: "2", Category: "art", Tags: []string{"y"}},
		model.Project{ID: "3", Category: "music", Tags: []string{"x"}},
		model.Project{ID: "4", Category: "art", Tags: []string{"x"}},
	)

	tests := []struct {
		name   string
		filter model.ProjectFilter
		want   []string
	}{
		{"no filter keeps insertion order", model.ProjectFilter{}, []string{"1", "2", "3", "4"}},
		{"category only", model.ProjectFilter{Category: "art"}, []string{"1", "2", "4"}},
		{"tag only", model.ProjectFilter{Tag: "x"}, []string{"1", "3", "4"}},
		{"category and tag", model.ProjectFilter{Category: "art", Tag: "x"}, []string{"1", "4"}},
		{"no match", model.ProjectFilter{Category: "music", Tag: "y"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestProjectRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	seedProjects(t, repo, model.Project{ID: "1", Status: model.StatusPending})

	updated, err := repo.UpdateStatus(ctx, "1", "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)

	_, err = repo.UpdateStatus(ctx, "missing", "approved")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProjectRepository_DeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	seedProjects(t, repo, model.Project{ID: "1"}, model.Project{ID: "2"}, model.Project{ID: "3"})

	deleted, err := repo.Delete(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "2", deleted.ID)

	all, err := repo.List(ctx, model.ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(all))

	_, err = repo.GetByID(ctx, "2")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.Delete(ctx, "2")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProjectRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	seedProjects(t, repo, model.Project{ID: "1", Tags: []string{"a"}})

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
}

func TestProjectRepository_DuplicateID(t *testing.T) {
	repo := NewProjectRepository()
	seedProjects(t, repo, model.Project{ID: "1"})

	_, err := repo.Create(context.Background(), model.Project{ID: "1"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}
