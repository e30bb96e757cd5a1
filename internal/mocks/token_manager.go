package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/projecthub-server/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) GenerateToken(identity model.Identity) (string, error) {
	ret := _m.Called(identity)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) ParseToken(token string) (model.Identity, error) {
	ret := _m.Called(token)
	return ret.Get(0).(model.Identity), ret.Error(1)
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}
