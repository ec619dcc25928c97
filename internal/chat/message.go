// Package chat implements the in-memory core of the relay: the session
// registry, the bounded message history, and the broadcast hub that routes
// inbound client events to state mutations and outbound fan-out.
package chat

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrNoContent is returned when a message carries neither text nor an image.
var ErrNoContent = errors.New("message has no text or image content")

// User is the public view of a registered session, as sent to clients in
// onlineUsers payloads.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Message is a single chat message. ID is a client-generated identifier
// used by clients to de-duplicate their own echoes. UserID is a stable
// per-browser identity that survives reconnects; Username is the display
// name current at send time and may be rewritten retroactively when the
// author renames.
type Message struct {
	ID        string `json:"id" validate:"required"`
	Text      string `json:"text,omitempty" validate:"omitempty,min=1,max=1000"`
	UserID    string `json:"userId" validate:"required"`
	Username  string `json:"username" validate:"required,min=2,max=20"`
	Timestamp int64  `json:"timestamp" validate:"required,gt=0"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ImageData string `json:"imageData,omitempty"`
}

// Validate checks the message against the wire constraints: username 2-20
// characters, text 1-1000 characters when present, a positive timestamp,
// and at least one content form (text or image; both together is fine).
func (m *Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}
	if m.Text == "" && m.ImageURL == "" && m.ImageData == "" {
		return ErrNoContent
	}
	return nil
}

// TypingEvent signals that a user started or stopped typing. It is relayed
// verbatim to every client, including the sender; suppressing one's own
// indicator is a client concern.
type TypingEvent struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required,min=2,max=20"`
	IsTyping bool   `json:"isTyping"`
}

// Validate checks the typing event's username bounds.
func (e *TypingEvent) Validate() error {
	return validate.Struct(e)
}

// JoinEvent announces a user identity on a connection. A repeat join with
// the same userId updates the display name.
type JoinEvent struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required,min=2,max=20"`
}

// Validate checks the join event's username bounds.
func (e *JoinEvent) Validate() error {
	return validate.Struct(e)
}

// UsernameChange is broadcast after every join so clients can relabel
// previously rendered messages from that user.
type UsernameChange struct {
	UserID      string `json:"userId"`
	NewUsername string `json:"newUsername"`
}
