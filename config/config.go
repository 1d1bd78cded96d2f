package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tokenbot/models"
)

const (
	defaultUserScope    = "users:read,users:write,users.profile:read,users.profile:write"
	OAuthCallbackPath   = "/slack/oauth/callback"
	defaultPort         = "8080"
	defaultEnvironment  = "dev"
	defaultCORSAllowAll = "*"
)

type SlackConfig struct {
	ClientID        string
	ClientSecret    string
	BotToken        string
	SigningSecret   string
	UserScope       string
	AlertWebhookURL string
}

// IsSignatureVerificationEnabled returns true if inbound webhooks must carry a valid Slack signature
func (c SlackConfig) IsSignatureVerificationEnabled() bool {
	return c.SigningSecret != ""
}

type AppConfig struct {
	PublicURL          string
	Port               string
	CORSAllowedOrigins string
	Environment        string
	ServerLogsURL      string

	SlackConfig SlackConfig
}

// Credentials returns the process-wide Slack credentials
func (c *AppConfig) Credentials() models.Credentials {
	return models.Credentials{
		ClientID:     c.SlackConfig.ClientID,
		ClientSecret: c.SlackConfig.ClientSecret,
		BotToken:     c.SlackConfig.BotToken,
	}
}

// CallbackURL is the public address Slack redirects to after authorization
func (c *AppConfig) CallbackURL() string {
	return strings.TrimRight(c.PublicURL, "/") + OAuthCallbackPath
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	return loadFromEnv()
}

func loadFromEnv() (*AppConfig, error) {
	clientID, err := getEnvRequired("SLACK_CLIENT_ID")
	if err != nil {
		return nil, err
	}

	clientSecret, err := getEnvRequired("SLACK_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}

	botToken, err := getEnvRequired("SLACK_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	publicURL, err := getEnvRequired("PUBLIC_URL")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		PublicURL:          publicURL,
		Port:               getEnvWithDefault("PORT", defaultPort),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", defaultCORSAllowAll),
		Environment:        getEnvWithDefault("ENVIRONMENT", defaultEnvironment),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),

		SlackConfig: SlackConfig{
			ClientID:        clientID,
			ClientSecret:    clientSecret,
			BotToken:        botToken,
			SigningSecret:   os.Getenv("SLACK_SIGNING_SECRET"),
			UserScope:       getEnvWithDefault("SLACK_USER_SCOPE", defaultUserScope),
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	if config.SlackConfig.IsSignatureVerificationEnabled() {
		log.Printf("✅ Slack signature verification enabled")
	} else {
		log.Printf("⚠️ SLACK_SIGNING_SECRET not set - webhook signatures will not be verified")
	}

	if config.SlackConfig.AlertWebhookURL == "" {
		log.Printf("⚠️ SLACK_ALERT_WEBHOOK_URL not set - error alerts are disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
