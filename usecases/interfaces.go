package usecases

import (
	"context"

	"tokenbot/models"
)

// TokensUseCaseInterface defines the operations behind the OAuth callback and webhook endpoints
type TokensUseCaseInterface interface {
	Authorize(ctx context.Context, code string) (models.AuthorizationResult, error)
	ProcessInteraction(ctx context.Context, payload models.InteractionPayload) error
	ProcessHomeOpened(ctx context.Context, userID string) error
	InstallURL() string
}
