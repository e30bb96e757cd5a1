package mocks

import "github.com/stretchr/testify/mock"

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(password string) ([]byte, error) {
	ret := _m.Called(password)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *PasswordHasher) Compare(hash []byte, password string) error {
	ret := _m.Called(hash, password)
	return ret.Error(0)
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}
