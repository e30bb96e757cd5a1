package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/projecthub-server/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (_m *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}
