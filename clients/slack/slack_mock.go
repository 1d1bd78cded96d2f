package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tokenbot/clients"
	"tokenbot/models"
)

// MockSlackClient is a mock implementation of the clients.SlackClient interface
type MockSlackClient struct {
	mock.Mock
}

var _ clients.SlackClient = (*MockSlackClient)(nil)

func (m *MockSlackClient) ExchangeCode(ctx context.Context, code string) (models.AuthorizationResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.AuthorizationResult), args.Error(1)
}

func (m *MockSlackClient) DeleteAllMessages(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockSlackClient) SendDirectMessage(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockSlackClient) RevokeToken(ctx context.Context, token string) (models.RevokeResult, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.RevokeResult), args.Error(1)
}

func (m *MockSlackClient) DeleteMessage(ctx context.Context, responseURL string) error {
	args := m.Called(ctx, responseURL)
	return args.Error(0)
}

func (m *MockSlackClient) PublishHomePanel(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSlackClient) AuthorizeURL() string {
	args := m.Called()
	return args.String(0)
}
