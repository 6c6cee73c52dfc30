package chathub_test

import "cinechat/backend/internal/models"

type MockClient struct {
	userID string
	roomID string

	// RecvChannel captures everything the hub delivers to this client.
	RecvChannel chan models.ServerEvent

	// done is closed by Close, so tests can observe teardown without racing
	// the hub goroutine.
	done chan struct{}
}

func newMockClient(userID, roomID string) *MockClient {
	return &MockClient{
		userID:      userID,
		roomID:      roomID,
		RecvChannel: make(chan models.ServerEvent, 16),
		done:        make(chan struct{}),
	}
}

func (c *MockClient) GetUserID() string { return c.userID }
func (c *MockClient) GetRoomID() string { return c.roomID }

func (c *MockClient) GetSendChannel() chan<- models.ServerEvent { return c.RecvChannel }

func (c *MockClient) Run() {}

func (c *MockClient) Close() { close(c.done) }

func (c *MockClient) isClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
