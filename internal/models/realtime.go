package models

import "encoding/json"

// Event names exchanged over the chat socket. Each name carries exactly one
// payload schema.
const (
	// EventChatMessage is sent by clients; data is either a raw string body
	// or an object with a "message" field.
	EventChatMessage = "chat-message"
	// EventMessage is broadcast to the other members of a room; data is a
	// single ChatMessage.
	EventMessage = "message"
	// EventPreviousMessages is emitted once to a joining client; data is the
	// room's stored history in chronological order.
	EventPreviousMessages = "previous-messages"
)

// ChatMessage is the canonical stored and broadcast form of one message.
// Timestamp is epoch milliseconds, stamped by the server at receipt.
type ChatMessage struct {
	Message   string `json:"message"`
	SenderID  string `json:"senderId"`
	Timestamp int64  `json:"timestamp"`
}

// ClientEvent is the envelope clients send over the socket.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the envelope the server writes to clients.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// chatPayload is the wrapped form some clients use for chat-message data.
// A client-supplied senderId is accepted for shape compatibility but never
// trusted; the connection's verified identity always wins.
type chatPayload struct {
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
}

// NormalizeChatBody extracts the text body from a chat-message payload,
// which may be a bare JSON string or a wrapped {"message": ...} object.
// Malformed payloads coerce to an empty body rather than an error, so no
// inbound event is dropped outright.
func NormalizeChatBody(data json.RawMessage) string {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		return raw
	}

	var wrapped chatPayload
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return wrapped.Message
	}

	return ""
}
