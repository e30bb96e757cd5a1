package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/projecthub-server/internal/model"
)

// Authorizer is a mock of model.Authorizer.
type Authorizer struct {
	mock.Mock
}

func (_m *Authorizer) Authorize(role model.Role, resource, action string) (bool, error) {
	ret := _m.Called(role, resource, action)
	return ret.Bool(0), ret.Error(1)
}

func NewAuthorizer(t testingT) *Authorizer {
	m := &Authorizer{}
	register(&m.Mock, t)
	return m
}
