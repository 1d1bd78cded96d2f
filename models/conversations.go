package models

// Channel is a direct-message conversation and the user on the other side.
type Channel struct {
	ID   string
	User string
}

// Message carries only what is needed to delete a message.
type Message struct {
	Timestamp string
}
