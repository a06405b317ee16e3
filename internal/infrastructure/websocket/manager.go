package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one live connection for an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager keeps the registry of live connections, one per user. A second
// connection from the same user replaces the first.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the registry loop until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok {
					close(old.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a payload to the user's live connection, dropping it
// silently when the user is offline or the send buffer is full.
func (m *Manager) SendToUser(userID string, payload []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		log.Printf("Dropping event for slow client %s", userID)
	}
}

// BroadcastEvent fans an event out to each listed user.
func (m *Manager) BroadcastEvent(userIDs []string, event *Event) {
	payload, err := event.Marshal()
	if err != nil {
		log.Printf("BroadcastEvent Error: %v", err)
		return
	}

	for _, id := range userIDs {
		m.SendToUser(id, payload)
	}
}

// IsOnline reports whether the user currently holds a live connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump consumes inbound frames. The only inbound application frame is
// ping; everything else goes through the REST API.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ReadPump Error for %s: %v", c.UserID, err)
			}
			break
		}

		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}

		if event.Type == EventTypePing {
			pong, err := NewEvent(EventTypePong, "", nil).Marshal()
			if err == nil {
				select {
				case c.Send <- pong:
				default:
				}
			}
		}
	}
}

// WritePump forwards queued payloads to the connection until the send
// channel is closed.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("WritePump Error for %s: %v", c.UserID, err)
			return
		}
	}
}
