package chathub

import "cinechat/backend/internal/models"

// Client is one active connection, already authenticated and bound to a
// single room. It abstracts the underlying transport so the hub can manage
// connection types uniformly (and tests can substitute fakes).
type Client interface {
	// GetUserID returns the verified identity attached at the handshake.
	GetUserID() string
	// GetRoomID returns the room this connection is bound to.
	GetRoomID() string

	// GetSendChannel returns the channel the hub writes outbound events to.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the outbound side; the read pump stops when the
	// underlying connection closes.
	Close()
}
