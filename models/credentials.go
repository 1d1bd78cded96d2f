package models

import "fmt"

// Credentials are the process-wide Slack app secrets. They are loaded once at
// startup and never change afterwards.
type Credentials struct {
	ClientID     string
	ClientSecret string
	BotToken     string
}

// String keeps secrets out of logs when a Credentials value is printed.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{ClientID: %s, ClientSecret: [redacted], BotToken: [redacted]}", c.ClientID)
}

// GoString mirrors String for %#v.
func (c Credentials) GoString() string {
	return c.String()
}
