package websocket

import (
	"encoding/json"
	"time"
)

const (
	EventTypePing       = "ping"
	EventTypePong       = "pong"
	EventTypeMessage    = "message"
	EventTypeRoomUpdate = "room_update"
	EventTypeRead       = "read_receipt"
)

// Event is the envelope for everything pushed over a live connection.
type Event struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewEvent(eventType, chatID string, data interface{}) *Event {
	return &Event{
		Type:      eventType,
		ChatID:    chatID,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
