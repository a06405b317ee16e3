package entity

import "time"

type Message struct {
	ID       string `json:"id" firestore:"id"`
	Text     string `json:"text" firestore:"text"`
	SenderID string `json:"sender_id" firestore:"senderId"`
	Read     bool   `json:"read" firestore:"read"`
	// Assigned by the server at commit time so ordering within a room does
	// not depend on client clocks.
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
