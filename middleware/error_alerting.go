package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"
)

const (
	alertCooldown = 10 * time.Minute
	alertTimeout  = 10 * time.Second
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

// ErrorAlertMiddleware posts server errors and panics to a Slack incoming webhook
type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	httpClient    *http.Client
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
	now           func() time.Time
}

func NewErrorAlertMiddleware(config SlackAlertConfig, httpClient *http.Client) *ErrorAlertMiddleware {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: alertTimeout}
	}

	return &ErrorAlertMiddleware{
		config:        config,
		httpClient:    httpClient,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: alertCooldown,
		now:           time.Now,
	}
}

// HTTPMiddleware recovers panics as 500s and alerts on every 5xx response
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := newStatusRecorder(w)
		requestContext := fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)

		defer func() {
			if p := recover(); p != nil {
				errorMsg := fmt.Sprintf("%s: PANIC - %v", requestContext, p)
				log.Printf("❌ %s", errorMsg)
				if !recorder.wroteHeader {
					http.Error(recorder, "internal server error", http.StatusInternalServerError)
				}
				m.alert(errorMsg, requestContext+" (PANIC)")
			}
		}()

		next.ServeHTTP(recorder, r)

		if recorder.status >= http.StatusInternalServerError {
			m.AlertOnError(
				fmt.Errorf("responded with status %d", recorder.status),
				requestContext,
			)
		}
	})
}

// AlertOnError sends an alert unless the same error was alerted within the cooldown
func (m *ErrorAlertMiddleware) AlertOnError(err error, alertContext string) {
	errorMsg := fmt.Sprintf("%s: %v", alertContext, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	now := m.now()

	m.mutex.Lock()
	m.pruneExpired(now)
	if _, exists := m.alertedErrors[hash]; exists {
		m.mutex.Unlock()
		return
	}
	m.alertedErrors[hash] = now
	m.mutex.Unlock()

	m.alert(errorMsg, alertContext)
}

// pruneExpired drops entries whose cooldown has passed. Callers hold m.mutex.
func (m *ErrorAlertMiddleware) pruneExpired(now time.Time) {
	for hash, lastAlert := range m.alertedErrors {
		if now.Sub(lastAlert) >= m.alertCooldown {
			delete(m.alertedErrors, hash)
		}
	}
}

func (m *ErrorAlertMiddleware) alert(errorMsg, alertContext string) {
	if m.config.WebhookURL == "" {
		return
	}
	go m.sendSlackAlert(errorMsg, alertContext)
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, alertContext string) {
	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()

	message := &slack.WebhookMessage{
		Text:   fmt.Sprintf("%s error: %s", m.config.AppName, errorMsg),
		Blocks: &slack.Blocks{BlockSet: m.alertBlocks(errorMsg, alertContext)},
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, m.config.WebhookURL, m.httpClient, message); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}

func (m *ErrorAlertMiddleware) alertBlocks(errorMsg, alertContext string) []slack.Block {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType,
			fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName),
			true,
			false,
		)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", alertContext), false, false),
		}, nil),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
			nil,
			nil,
		),
	}

	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL), false, false),
			nil,
			nil,
		))
	}

	return blocks
}
