package models

import "time"

// MessageStatus is the handling state of a feedback message.
type MessageStatus string

const (
	MessagePending   MessageStatus = "PENDING"
	MessageProcessed MessageStatus = "PROCESSED"
	MessageClosed    MessageStatus = "CLOSED"
)

// Valid reports whether s is a known status.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessagePending, MessageProcessed, MessageClosed:
		return true
	}
	return false
}

// MaxMessageLength is the longest accepted message body, in characters.
const MaxMessageLength = 1000

// Message is user feedback sent to operators.
type Message struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	Type      string        `json:"type"`
	Content   string        `json:"content"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateMessageRequest is the request body for sending feedback.
type CreateMessageRequest struct {
	UserID  int64  `json:"userId" validate:"gt=0"`
	Type    string `json:"type" validate:"oneof=suggestion content technical other"`
	Content string `json:"content"`
}
