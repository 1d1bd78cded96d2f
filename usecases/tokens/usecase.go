package tokens

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tokenbot/clients"
	"tokenbot/models"
	"tokenbot/utils"
)

// TokensUseCase drives the Slack client for token delivery and revocation
type TokensUseCase struct {
	slackClient clients.SlackClient
}

// NewTokensUseCase creates a new instance of TokensUseCase
func NewTokensUseCase(slackClient clients.SlackClient) *TokensUseCase {
	return &TokensUseCase{slackClient: slackClient}
}

// Authorize exchanges the code and delivers the new token to the user.
// When Slack did not authorize a user the result is returned untouched and
// nothing else happens; the caller reports result.Error.
func (u *TokensUseCase) Authorize(ctx context.Context, code string) (models.AuthorizationResult, error) {
	log.Printf("📋 Starting to process OAuth callback")

	result, err := u.slackClient.ExchangeCode(ctx, code)
	if err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	user, ok := result.AuthorizedUser().Get()
	if !ok {
		log.Printf("⚠️ OAuth exchange did not authorize a user: %q", result.Error)
		return result, nil
	}
	utils.AssertInvariant(user.ID != "" && user.AccessToken != "", "authorized user is missing id or token")

	// Slack hands out one user token per app, so the previous token message is stale.
	deleted, err := u.slackClient.DeleteAllMessages(ctx, user.ID)
	if err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("failed to clean up messages for %s: %w", user.ID, err)
	}
	log.Printf("🧹 Removed %d previous messages for user %s", deleted, user.ID)

	if err := u.slackClient.SendDirectMessage(ctx, user.ID, user.AccessToken); err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("failed to deliver token to %s: %w", user.ID, err)
	}

	log.Printf("✅ Delivered token to user %s", user.ID)
	return result, nil
}

// ProcessInteraction revokes the token of every Revoke click in the payload
// and retracts the originating message once the token is gone. Each action
// is handled on its own; failures are collected and returned together.
func (u *TokensUseCase) ProcessInteraction(ctx context.Context, payload models.InteractionPayload) error {
	actions := payload.RevokeActions()
	if len(actions) == 0 {
		log.Printf("⏭️ Interaction has no revoke actions - ignoring")
		return nil
	}

	var errs []error
	for _, action := range actions {
		if err := u.revoke(ctx, action, payload.ResponseURL); err != nil {
			log.Printf("❌ %v", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (u *TokensUseCase) revoke(ctx context.Context, action models.InteractionAction, responseURL string) error {
	result, err := u.slackClient.RevokeToken(ctx, action.Value)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if !result.Succeeded() {
		log.Printf("⚠️ Slack refused to revoke token: %s", result.Error)
		return nil
	}

	if result.Error == models.TokenRevokedError {
		log.Printf("🔐 Token was already revoked")
	} else {
		log.Printf("🔐 Token revoked")
	}

	if responseURL == "" {
		log.Printf("⚠️ Interaction has no response URL - token message left in place")
		return nil
	}

	if err := u.slackClient.DeleteMessage(ctx, responseURL); err != nil {
		return fmt.Errorf("failed to delete token message: %w", err)
	}

	log.Printf("🗑️ Deleted token message")
	return nil
}

// ProcessHomeOpened publishes the home tab for the user who opened it
func (u *TokensUseCase) ProcessHomeOpened(ctx context.Context, userID string) error {
	utils.AssertInvariant(userID != "", "home opened without a user")

	if err := u.slackClient.PublishHomePanel(ctx, userID); err != nil {
		return fmt.Errorf("failed to publish home tab: %w", err)
	}

	log.Printf("🏠 Published home tab for user %s", userID)
	return nil
}

// InstallURL is where a browser starts the OAuth flow
func (u *TokensUseCase) InstallURL() string {
	return u.slackClient.AuthorizeURL()
}
