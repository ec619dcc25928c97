package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound event names accepted from clients.
const (
	EventMessage    = "message"
	EventTyping     = "typing"
	EventUserJoined = "userJoined"
)

// Outbound event names sent to clients.
const (
	EventMessageHistory  = "messageHistory"
	EventOnlineUsers     = "onlineUsers"
	EventUserTyping      = "userTyping"
	EventUsernameChanged = "usernameChanged"
)

// ErrUnknownEvent is returned for envelopes whose event name is not one of
// the inbound events.
var ErrUnknownEvent = errors.New("unknown event")

// Envelope frames every event on the wire as {"event": ..., "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound is the closed set of decoded client events: *Message,
// *TypingEvent, and *JoinEvent.
type Inbound interface {
	inbound()
}

func (*Message) inbound()     {}
func (*TypingEvent) inbound() {}
func (*JoinEvent) inbound()   {}

// DecodeInbound parses a raw frame into one of the inbound event variants.
// It rejects malformed JSON and unknown event names; field-level validation
// is the hub's responsibility.
func DecodeInbound(frame []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Event {
	case EventMessage:
		var msg Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", env.Event, err)
		}
		return &msg, nil

	case EventTyping:
		var ev TypingEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", env.Event, err)
		}
		return &ev, nil

	case EventUserJoined:
		var ev JoinEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", env.Event, err)
		}
		return &ev, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

// Encode wraps a payload in an envelope and marshals it for the wire.
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
