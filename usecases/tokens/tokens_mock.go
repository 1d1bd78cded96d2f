package tokens

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tokenbot/models"
	"tokenbot/usecases"
)

// MockTokensUseCase is a mock implementation of the TokensUseCase
type MockTokensUseCase struct {
	mock.Mock
}

var _ usecases.TokensUseCaseInterface = (*MockTokensUseCase)(nil)

func (m *MockTokensUseCase) Authorize(ctx context.Context, code string) (models.AuthorizationResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.AuthorizationResult), args.Error(1)
}

func (m *MockTokensUseCase) ProcessInteraction(ctx context.Context, payload models.InteractionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTokensUseCase) ProcessHomeOpened(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokensUseCase) InstallURL() string {
	args := m.Called()
	return args.String(0)
}
