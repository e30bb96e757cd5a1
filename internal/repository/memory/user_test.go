package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/projecthub-server/internal/model"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := model.User{ID: "u-1", Name: "Ann", Email: "ann@example.com", PasswordHash: []byte("h"), Role: model.RoleUser, CreatedAt: time.Now()}
	saved, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, saved.ID)

	byEmail, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)
	assert.Equal(t, "Ann", byEmail.Name)
}

func TestUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_DuplicateEmailKeepsFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.Create(ctx, model.User{ID: "u-1", Name: "First", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.User{ID: "u-2", Name: "Second", Email: "dup@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	got, err := repo.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepository_ConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, model.User{ID: fmt.Sprintf("u-%d", i), Email: "race@example.com"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, repo.Count())
}
