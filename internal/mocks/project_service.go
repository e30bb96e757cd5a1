package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/projecthub-server/internal/model"
)

// ProjectService is a mock of handler.ProjectService.
type ProjectService struct {
	mock.Mock
}

func (_m *ProjectService) Submit(ctx context.Context, params model.SubmitProjectParams) (model.Project, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectService) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	ret := _m.Called(ctx, filter)
	var r0 []model.Project
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Project)
	}
	return r0, ret.Error(1)
}

func (_m *ProjectService) Get(ctx context.Context, id string) (model.Project, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectService) ListAll(ctx context.Context) ([]model.Project, error) {
	ret := _m.Called(ctx)
	var r0 []model.Project
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Project)
	}
	return r0, ret.Error(1)
}

func (_m *ProjectService) UpdateStatus(ctx context.Context, id string, status string) (model.Project, error) {
	ret := _m.Called(ctx, id, status)
	return ret.Get(0).(model.Project), ret.Error(1)
}

func (_m *ProjectService) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ProjectService) OpenFile(ctx context.Context, name string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, name)
	var r0 io.ReadCloser
	if v := ret.Get(0); v != nil {
		r0 = v.(io.ReadCloser)
	}
	return r0, ret.Error(1)
}

func NewProjectService(t testingT) *ProjectService {
	m := &ProjectService{}
	register(&m.Mock, t)
	return m
}
