package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/projecthub-server/internal/model"
)

// ProjectStore is a mock of model.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

func (_m *ProjectStore) Create(ctx context.Context, project model.Project) (model.Project, error) {
	ret := _m.Called(ctx, project)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectStore) GetByID(ctx context.Context, id string) (model.Project, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectStore) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	ret := _m.Called(ctx, filter)
	var r0 []model.Project
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Project)
	}
	return r0, ret.Error(1)
}

func (_m *ProjectStore) UpdateStatus(ctx context.Context, id string, status string) (model.Project, error) {
	ret := _m.Called(ctx, id, status)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectStore) Delete(ctx context.Context, id string) (model.Project, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func NewProjectStore(t testingT) *ProjectStore {
	m := &ProjectStore{}
	register(&m.Mock, t)
	return m
}
