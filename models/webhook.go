package models

import (
	"encoding/json"
	"fmt"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// RevokeActionID identifies clicks on the Revoke button of a token message.
const RevokeActionID = "revoke"

type InteractionAction struct {
	ActionID string
	Value    string
}

// InteractionPayload is a button click. Value carries the token to revoke and
// ResponseURL is the one-time URL for retracting the clicked message.
type InteractionPayload struct {
	Actions     []InteractionAction
	ResponseURL string
}

// RevokeActions returns the actions that ask for a token revocation, in payload order
func (p InteractionPayload) RevokeActions() []InteractionAction {
	var actions []InteractionAction
	for _, action := range p.Actions {
		if action.ActionID == RevokeActionID {
			actions = append(actions, action)
		}
	}
	return actions
}

// WebhookRequest is everything that can arrive on the webhook endpoint.
// The set of variants is closed: URLVerification, HomeOpened, Interaction and Ignored.
type WebhookRequest interface {
	webhookRequest()
}

type URLVerification struct {
	Challenge string
}

type HomeOpened struct {
	UserID string
}

type Interaction struct {
	Payload InteractionPayload
}

// Ignored covers unknown event types, malformed bodies and anything else that needs no work.
type Ignored struct {
	Reason string
}

func (URLVerification) webhookRequest() {}
func (HomeOpened) webhookRequest()      {}
func (Interaction) webhookRequest()     {}
func (Ignored) webhookRequest()         {}

// ClassifyWebhook turns a webhook request into its variant. A non-empty
// interactive payload form field wins over the raw body.
func ClassifyWebhook(payload string, body []byte) WebhookRequest {
	if payload != "" {
		parsed, err := ParseInteractionPayload(payload)
		if err != nil {
			return Ignored{Reason: fmt.Sprintf("malformed interaction payload: %v", err)}
		}
		return Interaction{Payload: parsed}
	}

	return ParseWebhookEvent(body)
}

// ParseInteractionPayload decodes the JSON carried in the payload form field
func ParseInteractionPayload(raw string) (InteractionPayload, error) {
	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(raw), &callback); err != nil {
		return InteractionPayload{}, fmt.Errorf("failed to decode interaction payload: %w", err)
	}

	payload := InteractionPayload{ResponseURL: callback.ResponseURL}
	for _, action := range callback.ActionCallback.BlockActions {
		if action == nil {
			continue
		}
		payload.Actions = append(payload.Actions, InteractionAction{
			ActionID: action.ActionID,
			Value:    action.Value,
		})
	}

	// Actions without a block_id are decoded by slack-go as legacy attachment
	// actions, where the identifier lives in name.
	for _, action := range callback.ActionCallback.AttachmentActions {
		if action == nil {
			continue
		}
		payload.Actions = append(payload.Actions, InteractionAction{
			ActionID: action.Name,
			Value:    action.Value,
		})
	}

	return payload, nil
}

type eventEnvelope struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

// ParseWebhookEvent classifies a raw Events API body. It never fails: anything
// it does not recognise becomes Ignored.
func ParseWebhookEvent(body []byte) WebhookRequest {
	if len(body) == 0 {
		return Ignored{Reason: "empty body"}
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Ignored{Reason: fmt.Sprintf("body is not JSON: %v", err)}
	}

	// slackevents dereferences the inner event without checking for it
	if envelope.Type == slackevents.CallbackEvent && (len(envelope.Event) == 0 || string(envelope.Event) == "null") {
		return Ignored{Reason: "event_callback without event"}
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return Ignored{Reason: fmt.Sprintf("unsupported event: %v", err)}
	}

	switch event.Type {
	case slackevents.URLVerification:
		verification, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent)
		if !ok {
			return Ignored{Reason: "url_verification without challenge"}
		}
		return URLVerification{Challenge: verification.Challenge}
	case slackevents.CallbackEvent:
		switch inner := event.InnerEvent.Data.(type) {
		case *slackevents.AppHomeOpenedEvent:
			if inner.User == "" {
				return Ignored{Reason: "app_home_opened without user"}
			}
			return HomeOpened{UserID: inner.User}
		default:
			return Ignored{Reason: fmt.Sprintf("unhandled inner event %s", event.InnerEvent.Type)}
		}
	default:
		return Ignored{Reason: fmt.Sprintf("unhandled event type %s", event.Type)}
	}
}
