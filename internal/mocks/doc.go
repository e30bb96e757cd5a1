// Package mocks holds testify mocks for the interfaces in model and the HTTP handlers.
// They follow mockery's layout: embed mock.Mock and register cleanup with NewX(t).
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
