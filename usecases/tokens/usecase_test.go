package tokens

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	slackclient "tokenbot/clients/slack"
	"tokenbot/models"
)

type tokensUseCaseTestFixture struct {
	useCase     *TokensUseCase
	slackClient *slackclient.MockSlackClient
	ctx         context.Context
}

func setupTokensUseCaseTest(t *testing.T) *tokensUseCaseTestFixture {
	slackClient := new(slackclient.MockSlackClient)
	t.Cleanup(func() { slackClient.AssertExpectations(t) })

	return &tokensUseCaseTestFixture{
		useCase:     NewTokensUseCase(slackClient),
		slackClient: slackClient,
		ctx:         context.Background(),
	}
}

func authorized(userID, token string) models.AuthorizationResult {
	return models.AuthorizationResult{AuthedUser: mo.Some(models.AuthedUser{ID: userID, AccessToken: token})}
}

func TestAuthorize(t *testing.T) {
	t.Run("cleans up before sending the token", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)

		var order []string
		f.slackClient.On("ExchangeCode", f.ctx, "abc123").Return(authorized("U1", "xoxp-1"), nil)
		f.slackClient.On("DeleteAllMessages", f.ctx, "U1").
			Run(func(mock.Arguments) { order = append(order, "cleanup") }).
			Return(3, nil)
		f.slackClient.On("SendDirectMessage", f.ctx, "U1", "xoxp-1").
			Run(func(mock.Arguments) { order = append(order, "send") }).
			Return(nil)

		result, err := f.useCase.Authorize(f.ctx, "abc123")
		require.NoError(t, err)
		assert.True(t, result.AuthorizedUser().IsPresent())
		assert.Equal(t, []string{"cleanup", "send"}, order)
		f.slackClient.AssertNumberOfCalls(t, "SendDirectMessage", 1)
	})

	t.Run("slack error skips cleanup and send", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)

		failed := models.AuthorizationResult{AuthedUser: mo.None[models.AuthedUser](), Error: "invalid_code"}
		f.slackClient.On("ExchangeCode", f.ctx, "expired").Return(failed, nil)

		result, err := f.useCase.Authorize(f.ctx, "expired")
		require.NoError(t, err)
		assert.Equal(t, "invalid_code", result.Error)
		f.slackClient.AssertNotCalled(t, "DeleteAllMessages", mock.Anything, mock.Anything)
		f.slackClient.AssertNotCalled(t, "SendDirectMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user without token skips cleanup and send", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)

		partial := models.AuthorizationResult{AuthedUser: mo.Some(models.AuthedUser{ID: "U1"})}
		f.slackClient.On("ExchangeCode", f.ctx, "abc123").Return(partial, nil)

		result, err := f.useCase.Authorize(f.ctx, "abc123")
		require.NoError(t, err)
		assert.Empty(t, result.Error)
		f.slackClient.AssertNotCalled(t, "DeleteAllMessages", mock.Anything, mock.Anything)
		f.slackClient.AssertNotCalled(t, "SendDirectMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("exchange failure", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("ExchangeCode", f.ctx, "abc123").Return(models.AuthorizationResult{}, errors.New("connection reset"))

		_, err := f.useCase.Authorize(f.ctx, "abc123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("cleanup failure stops delivery", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("ExchangeCode", f.ctx, "abc123").Return(authorized("U1", "xoxp-1"), nil)
		f.slackClient.On("DeleteAllMessages", f.ctx, "U1").Return(0, errors.New("status 500"))

		_, err := f.useCase.Authorize(f.ctx, "abc123")
		require.Error(t, err)
		f.slackClient.AssertNotCalled(t, "SendDirectMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("send failure", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("ExchangeCode", f.ctx, "abc123").Return(authorized("U1", "xoxp-1"), nil)
		f.slackClient.On("DeleteAllMessages", f.ctx, "U1").Return(0, nil)
		f.slackClient.On("SendDirectMessage", f.ctx, "U1", "xoxp-1").Return(errors.New("channel_not_found"))

		_, err := f.useCase.Authorize(f.ctx, "abc123")
		require.Error(t, err)
	})
}

func TestProcessInteraction(t *testing.T) {
	const responseURL = "https://hooks.slack.com/actions/T1/1/abc"

	revokeClick := func(token string) models.InteractionPayload {
		return models.InteractionPayload{
			Actions:     []models.InteractionAction{{ActionID: models.RevokeActionID, Value: token}},
			ResponseURL: responseURL,
		}
	}

	t.Run("revoked token deletes the message once", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-1").Return(models.RevokeResult{Revoked: true}, nil)
		f.slackClient.On("DeleteMessage", f.ctx, responseURL).Return(nil)

		require.NoError(t, f.useCase.ProcessInteraction(f.ctx, revokeClick("xoxp-1")))
		f.slackClient.AssertNumberOfCalls(t, "DeleteMessage", 1)
	})

	t.Run("already revoked token still deletes the message", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-1").Return(models.RevokeResult{Error: models.TokenRevokedError}, nil)
		f.slackClient.On("DeleteMessage", f.ctx, responseURL).Return(nil)

		require.NoError(t, f.useCase.ProcessInteraction(f.ctx, revokeClick("xoxp-1")))
		f.slackClient.AssertNumberOfCalls(t, "DeleteMessage", 1)
	})

	t.Run("refused revocation keeps the message", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-1").Return(models.RevokeResult{Error: "invalid_auth"}, nil)

		require.NoError(t, f.useCase.ProcessInteraction(f.ctx, revokeClick("xoxp-1")))
		f.slackClient.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})

	t.Run("other actions are ignored", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		payload := models.InteractionPayload{
			Actions:     []models.InteractionAction{{ActionID: "authorize", Value: "xoxp-1"}},
			ResponseURL: responseURL,
		}

		require.NoError(t, f.useCase.ProcessInteraction(f.ctx, payload))
		f.slackClient.AssertNotCalled(t, "RevokeToken", mock.Anything, mock.Anything)
		f.slackClient.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})

	t.Run("actions do not short-circuit each other", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		payload := models.InteractionPayload{
			Actions: []models.InteractionAction{
				{ActionID: models.RevokeActionID, Value: "xoxp-broken"},
				{ActionID: "other", Value: "ignored"},
				{ActionID: models.RevokeActionID, Value: "xoxp-2"},
			},
			ResponseURL: responseURL,
		}
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-broken").Return(models.RevokeResult{}, errors.New("timeout"))
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-2").Return(models.RevokeResult{Revoked: true}, nil)
		f.slackClient.On("DeleteMessage", f.ctx, responseURL).Return(nil)

		err := f.useCase.ProcessInteraction(f.ctx, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
		f.slackClient.AssertNumberOfCalls(t, "RevokeToken", 2)
		f.slackClient.AssertNumberOfCalls(t, "DeleteMessage", 1)
	})

	t.Run("missing response url skips deletion", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		payload := revokeClick("xoxp-1")
		payload.ResponseURL = ""
		f.slackClient.On("RevokeToken", f.ctx, "xoxp-1").Return(models.RevokeResult{Revoked: true}, nil)

		require.NoError(t, f.useCase.ProcessInteraction(f.ctx, payload))
		f.slackClient.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})
}

func TestProcessHomeOpened(t *testing.T) {
	t.Run("publishes once", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("PublishHomePanel", f.ctx, "U1").Return(nil)

		require.NoError(t, f.useCase.ProcessHomeOpened(f.ctx, "U1"))
		f.slackClient.AssertNumberOfCalls(t, "PublishHomePanel", 1)
	})

	t.Run("publish failure", func(t *testing.T) {
		f := setupTokensUseCaseTest(t)
		f.slackClient.On("PublishHomePanel", f.ctx, "U1").Return(errors.New("invalid_arguments"))

		require.Error(t, f.useCase.ProcessHomeOpened(f.ctx, "U1"))
	})
}

func TestInstallURL(t *testing.T) {
	f := setupTokensUseCaseTest(t)
	f.slackClient.On("AuthorizeURL").Return("https://slack.com/oauth/v2/authorize?client_id=1")

	assert.Equal(t, "https://slack.com/oauth/v2/authorize?client_id=1", f.useCase.InstallURL())
}
