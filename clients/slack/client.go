package slack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/mo"
	"github.com/slack-go/slack"

	"tokenbot/clients"
	"tokenbot/models"
)

const (
	authorizeEndpoint  = "https://slack.com/oauth/v2/authorize"
	directChannelType  = "im"
	defaultHTTPTimeout = 30 * time.Second
)

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	api         *slack.Client
	httpClient  *http.Client
	credentials models.Credentials
	callbackURL string
	userScope   string
}

var _ clients.SlackClient = (*SlackClient)(nil)

// NewSlackClient creates a client authenticated with the bot token. The same
// http client serves the Web API calls, the OAuth exchange and response URLs.
func NewSlackClient(
	credentials models.Credentials,
	callbackURL, userScope string,
	httpClient *http.Client,
) *SlackClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &SlackClient{
		api:         slack.New(credentials.BotToken, slack.OptionHTTPClient(httpClient)),
		httpClient:  httpClient,
		credentials: credentials,
		callbackURL: callbackURL,
		userScope:   userScope,
	}
}

// ExchangeCode exchanges an OAuth authorization code for a user token
func (c *SlackClient) ExchangeCode(ctx context.Context, code string) (models.AuthorizationResult, error) {
	response, err := slack.GetOAuthV2ResponseContext(
		ctx,
		c.httpClient,
		c.credentials.ClientID,
		c.credentials.ClientSecret,
		code,
		c.callbackURL,
	)

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		log.Printf("⚠️ OAuth exchange rejected by Slack: %s", slackErr.Err)
		return models.AuthorizationResult{AuthedUser: mo.None[models.AuthedUser](), Error: slackErr.Err}, nil
	}
	if err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	result := models.AuthorizationResult{AuthedUser: mo.None[models.AuthedUser](), Error: response.Error}
	if response.AuthedUser.ID != "" || response.AuthedUser.AccessToken != "" {
		result.AuthedUser = mo.Some(models.AuthedUser{
			ID:          response.AuthedUser.ID,
			AccessToken: response.AuthedUser.AccessToken,
		})
	}

	return result, nil
}

// ListDirectChannels lists the bot's direct-message channels page by page
func (c *SlackClient) ListDirectChannels() *Pager[models.Channel] {
	return newPager[models.Channel](func(ctx context.Context, cursor string) (page[models.Channel], error) {
		channels, nextCursor, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Cursor: cursor,
			Types:  []string{directChannelType},
		})
		if err != nil {
			return page[models.Channel]{}, fmt.Errorf("failed to list direct channels: %w", err)
		}

		items := make([]models.Channel, 0, len(channels))
		for _, channel := range channels {
			items = append(items, models.Channel{ID: channel.ID, User: channel.User})
		}

		// slack-go leaves the slice nil when the channels field is missing
		return page[models.Channel]{items: items, nextCursor: nextCursor, last: channels == nil}, nil
	})
}

// ReadChannelHistory lists the messages of a channel page by page. slack-go
// sends conversations.history as a form post carrying the bot token.
func (c *SlackClient) ReadChannelHistory(channelID string) *Pager[models.Message] {
	return newPager[models.Message](func(ctx context.Context, cursor string) (page[models.Message], error) {
		response, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Cursor:    cursor,
		})
		if err != nil {
			return page[models.Message]{}, fmt.Errorf("failed to read history of %s: %w", channelID, err)
		}

		items := make([]models.Message, 0, len(response.Messages))
		for _, message := range response.Messages {
			items = append(items, models.Message{Timestamp: message.Timestamp})
		}

		return page[models.Message]{
			items:      items,
			nextCursor: response.ResponseMetaData.NextCursor,
			last:       !response.HasMore || response.Messages == nil,
		}, nil
	})
}

// FindDirectChannel returns the first direct channel belonging to userID
func (c *SlackClient) FindDirectChannel(ctx context.Context, userID string) (mo.Option[models.Channel], error) {
	for channel, err := range c.ListDirectChannels().All(ctx) {
		if err != nil {
			return mo.None[models.Channel](), err
		}
		if channel.User == userID {
			return mo.Some(channel), nil
		}
	}

	return mo.None[models.Channel](), nil
}

// DeleteAllMessages deletes every message of the direct channel with userID.
// Cleanup is best effort: a failed deletion is logged and the loop moves on,
// so an error part way through leaves the channel partially cleaned.
func (c *SlackClient) DeleteAllMessages(ctx context.Context, userID string) (int, error) {
	maybeChannel, err := c.FindDirectChannel(ctx, userID)
	if err != nil {
		return 0, err
	}

	channel, ok := maybeChannel.Get()
	if !ok {
		log.Printf("📋 No direct channel with user %s, nothing to clean up", userID)
		return 0, nil
	}

	deleted := 0
	for message, err := range c.ReadChannelHistory(channel.ID).All(ctx) {
		if err != nil {
			return deleted, err
		}

		if _, _, err := c.api.DeleteMessageContext(ctx, channel.ID, message.Timestamp); err != nil {
			log.Printf("⚠️ Failed to delete message %s in channel %s: %v", message.Timestamp, channel.ID, err)
			continue
		}
		deleted++
	}

	log.Printf("🧹 Deleted %d messages in channel %s for user %s", deleted, channel.ID, userID)
	return deleted, nil
}

// RevokeToken revokes a user token. Slack-side failures, including an
// already revoked token, are returned in RevokeResult.Error.
func (c *SlackClient) RevokeToken(ctx context.Context, token string) (models.RevokeResult, error) {
	// an empty token would make slack-go revoke the bot token instead
	if token == "" {
		return models.RevokeResult{Error: "missing_token"}, nil
	}

	response, err := c.api.SendAuthRevokeContext(ctx, token)

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return models.RevokeResult{Error: slackErr.Err}, nil
	}
	if err != nil {
		return models.RevokeResult{}, fmt.Errorf("failed to revoke token: %w", err)
	}

	return models.RevokeResult{Revoked: response.Revoked, Error: response.Error}, nil
}

// SendDirectMessage sends the token with a Revoke button to the user's direct channel
func (c *SlackClient) SendDirectMessage(ctx context.Context, userID, token string) error {
	channelID, _, err := c.api.PostMessageContext(
		ctx,
		userID,
		slack.MsgOptionText(tokenMessageText(token), false),
		slack.MsgOptionBlocks(tokenMessageBlocks(token)...),
	)
	if err != nil {
		return fmt.Errorf("failed to send token message to %s: %w", userID, err)
	}

	log.Printf("📤 Sent token message to user %s in channel %s", userID, channelID)
	return nil
}

// DeleteMessage retracts the message an interaction came from
func (c *SlackClient) DeleteMessage(ctx context.Context, responseURL string) error {
	if _, _, _, err := c.api.SendMessageContext(ctx, "", slack.MsgOptionDeleteOriginal(responseURL)); err != nil {
		return fmt.Errorf("failed to delete original message: %w", err)
	}
	return nil
}

// PublishHomePanel publishes the app home tab for userID
func (c *SlackClient) PublishHomePanel(ctx context.Context, userID string) error {
	_, err := c.api.PublishViewContext(ctx, slack.PublishViewContextRequest{
		UserID: userID,
		View:   homeView(c.AuthorizeURL()),
	})
	if err != nil {
		return fmt.Errorf("failed to publish home tab for %s: %w", userID, err)
	}
	return nil
}

// AuthorizeURL builds the OAuth v2 authorize link for this app
func (c *SlackClient) AuthorizeURL() string {
	return fmt.Sprintf(
		"%s?user_scope=%s&redirect_uri=%s&client_id=%s",
		authorizeEndpoint,
		url.QueryEscape(c.userScope),
		url.QueryEscape(c.callbackURL),
		url.QueryEscape(c.credentials.ClientID),
	)
}
