package slack

import (
	"github.com/slack-go/slack"

	"tokenbot/models"
)

const (
	tokenSectionBlockID = "token"
	tokenActionsBlockID = "token_actions"
	homeActionsBlockID  = "home_actions"
	authorizeActionID   = "authorize"

	profileSetExample = "```curl -H \"Authorization: Bearer <YOUR_TOKEN>\" " +
		"-H \"Content-Type: application/json; charset=utf-8\" " +
		"-d '{\"profile\": {\"status_emoji\": \":robot_face:\", \"status_text\": \"Automated\"}}' " +
		"https://slack.com/api/users.profile.set```"
)

func tokenMessageText(token string) string {
	return "Your token:\n" + token
}

func tokenMessageBlocks(token string) []slack.Block {
	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "*Your token:* ```"+token+"```", false, false),
		nil,
		nil,
		slack.SectionBlockOptionBlockID(tokenSectionBlockID),
	)

	revokeButton := slack.NewButtonBlockElement(
		models.RevokeActionID,
		token,
		slack.NewTextBlockObject(slack.PlainTextType, "Revoke", false, false),
	).WithStyle(slack.StyleDanger)

	return []slack.Block{
		section,
		slack.NewActionBlock(tokenActionsBlockID, revokeButton),
	}
}

func homeView(authorizeURL string) slack.HomeTabViewRequest {
	return slack.HomeTabViewRequest{
		Type:   slack.VTHomeTab,
		Blocks: slack.Blocks{BlockSet: homeBlocks(authorizeURL)},
	}
}

func homeBlocks(authorizeURL string) []slack.Block {
	plain := func(text string) *slack.SectionBlock {
		return slack.NewSectionBlock(slack.NewTextBlockObject(slack.PlainTextType, text, false, false), nil, nil)
	}
	markdown := func(text string) *slack.SectionBlock {
		return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
	}

	authorizeButton := slack.NewButtonBlockElement(
		authorizeActionID,
		"",
		slack.NewTextBlockObject(slack.PlainTextType, "Authorize", false, false),
	).WithStyle(slack.StylePrimary).WithURL(authorizeURL)

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Quick start", false, false)),
		plain("Press Authorize, pick up the token from this app's messages and set your status from any HTTP client:"),
		markdown(profileSetExample),
		markdown("Status and profile fields are described <https://api.slack.com/apis/presence-and-status|in the Slack docs>"),
		slack.NewDividerBlock(),
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "How it works", false, false)),
		markdown("Pressing `Authorize` lets the app create a user token on your behalf. The token arrives as a direct message with a Revoke button."),
		plain("Slack issues one user token per app, so authorizing again returns the same token. Revoke it first to get a new one."),
		markdown("_*Careful:* the token can change your whole profile, not only your status._"),
		slack.NewActionBlock(homeActionsBlockID, authorizeButton),
	}
}
