package chathub

import (
	"time"

	"cinechat/backend/internal/models"
	"cinechat/backend/internal/storage"

	"go.uber.org/zap"
)

// replayEvent carries a finished history fetch back to the hub loop.
type replayEvent struct {
	client  Client
	history []models.ChatMessage
}

// outboundMessage is a stamped, persisted-or-degraded message ready for
// fan-out.
type outboundMessage struct {
	sender Client
	roomID string
	msg    models.ChatMessage
}

// ManagerService is the hub: it owns room membership and serializes joins,
// leaves and fan-out on a single goroutine. Store I/O never runs on that
// goroutine — history fetches run in their own goroutine per join, and the
// persistence pipeline runs on each connection's read pump — so one slow
// store call suspends only the connection waiting on it, never the hub.
type ManagerService struct {
	rooms map[string]map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client

	replayCh    chan replayEvent
	broadcastCh chan outboundMessage

	Storage storage.Storage

	logger *zap.SugaredLogger
	quit   chan struct{}
}

func NewManagerService(s storage.Storage, logger *zap.SugaredLogger) *ManagerService {
	return &ManagerService{
		rooms:        make(map[string]map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		replayCh:     make(chan replayEvent),
		broadcastCh:  make(chan outboundMessage),
		Storage:      s,
		logger:       logger,
		quit:         make(chan struct{}),
	}
}

// Run is the hub's event loop. Call it in its own goroutine; Stop ends it.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.join(client)
		case client := <-m.UnregisterCh:
			m.leave(client)
		case r := <-m.replayCh:
			m.replay(r)
		case out := <-m.broadcastCh:
			m.broadcast(out.sender, out.roomID, out.msg)
		case <-m.quit:
			return
		}
	}
}

// Stop terminates the event loop. Connections are torn down by their own
// pumps when the process's listener closes.
func (m *ManagerService) Stop() {
	close(m.quit)
}

// Done reports hub shutdown. Pumps and pipelines select against it so they
// never block on a stopped hub.
func (m *ManagerService) Done() <-chan struct{} {
	return m.quit
}

// join adds the client to its room's connection set and kicks off the
// history fetch. Membership is immediate; the replay lands asynchronously
// once the store answers, so a hung read stalls only this client's replay.
func (m *ManagerService) join(client Client) {
	roomID := client.GetRoomID()

	clients := m.rooms[roomID]
	if clients == nil {
		clients = make(map[Client]bool)
		m.rooms[roomID] = clients
	}
	clients[client] = true

	go m.fetchHistory(client)

	m.logger.Infow("client joined room", "user_id", client.GetUserID(), "room_id", roomID)
}

// fetchHistory reads the room log off the hub loop and hands the result
// back to it. A failed read degrades to an empty replay; the join itself
// never fails.
func (m *ManagerService) fetchHistory(client Client) {
	roomID := client.GetRoomID()

	history, err := m.Storage.RoomMessages(roomID)
	if err != nil {
		m.logger.Errorw("history replay degraded to empty", "room_id", roomID, "error", err)
		history = nil
	}
	if history == nil {
		history = []models.ChatMessage{}
	}

	select {
	case m.replayCh <- replayEvent{client: client, history: history}:
	case <-m.quit:
	}
}

// replay emits stored history to the joining client only, and only if it is
// still a room member by the time the fetch completes.
func (m *ManagerService) replay(r replayEvent) {
	if clients := m.rooms[r.client.GetRoomID()]; !clients[r.client] {
		return
	}
	m.deliver(r.client, models.ServerEvent{Event: models.EventPreviousMessages, Data: r.history})
}

// leave removes the client and closes its outbound channel. The room's
// entry is dropped once empty; the stored log lives on until its TTL.
func (m *ManagerService) leave(client Client) {
	roomID := client.GetRoomID()

	clients, ok := m.rooms[roomID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(m.rooms, roomID)
	}
	client.Close()

	m.logger.Infow("client left room", "user_id", client.GetUserID(), "room_id", roomID)
}

// persistResult makes the degraded store-failure path explicit: the
// broadcast step runs either way, but callers and tests can see which
// branch was taken.
type persistResult struct {
	Stored bool
	Err    error
}

func (m *ManagerService) persist(roomID string, msg models.ChatMessage) persistResult {
	if err := m.Storage.AppendMessage(roomID, msg); err != nil {
		return persistResult{Stored: false, Err: err}
	}
	return persistResult{Stored: true}
}

// Dispatch is the persistence pipeline for one inbound chat event: stamp
// with the verified sender and receipt time, append to the store, then hand
// the stamped message to the hub for fan-out regardless of the append
// outcome. It runs on the caller's goroutine — each read pump calls it
// sequentially, which preserves per-connection store-before-broadcast
// ordering while connections on other rooms proceed unblocked.
func (m *ManagerService) Dispatch(sender Client, body string) {
	roomID := sender.GetRoomID()

	msg := models.ChatMessage{
		Message:   body,
		SenderID:  sender.GetUserID(),
		Timestamp: time.Now().UnixMilli(),
	}

	if res := m.persist(roomID, msg); !res.Stored {
		m.logger.Warnw("message not persisted, broadcasting anyway",
			"room_id", roomID, "sender_id", msg.SenderID, "error", res.Err)
	}

	select {
	case m.broadcastCh <- outboundMessage{sender: sender, roomID: roomID, msg: msg}:
	case <-m.quit:
	}
}

// broadcast fans the stored form out to every other connection in the room.
// The sender never receives its own echo.
func (m *ManagerService) broadcast(sender Client, roomID string, msg models.ChatMessage) {
	for client := range m.rooms[roomID] {
		if client == sender {
			continue
		}
		m.deliver(client, models.ServerEvent{Event: models.EventMessage, Data: msg})
	}
}

// deliver writes an event to a client without blocking the hub loop. A
// client whose buffer is full is treated as dead and removed.
func (m *ManagerService) deliver(client Client, event models.ServerEvent) {
	select {
	case client.GetSendChannel() <- event:
	default:
		m.logger.Warnw("client send buffer full, dropping connection",
			"user_id", client.GetUserID(), "room_id", client.GetRoomID())
		m.leave(client)
	}
}
