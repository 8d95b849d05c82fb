package mocks

import (
	"context"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAuthAPI is a mock implementation of examapi.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResult), args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context, auth examapi.Auth) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}
