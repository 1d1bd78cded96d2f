package clients

import (
	"context"

	"tokenbot/models"
)

// SlackClient is the single point of authenticated access to the Slack Web API
type SlackClient interface {
	// ExchangeCode trades a one-time OAuth code for a user token.
	// Slack-side failures are returned in AuthorizationResult.Error.
	ExchangeCode(ctx context.Context, code string) (models.AuthorizationResult, error)

	// DeleteAllMessages removes every message in the bot's direct channel with userID
	// and returns how many were deleted.
	DeleteAllMessages(ctx context.Context, userID string) (int, error)
	SendDirectMessage(ctx context.Context, userID, token string) error
	RevokeToken(ctx context.Context, token string) (models.RevokeResult, error)
	DeleteMessage(ctx context.Context, responseURL string) error
	PublishHomePanel(ctx context.Context, userID string) error

	AuthorizeURL() string
}
