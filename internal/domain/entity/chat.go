package entity

import (
	"fmt"
	"time"
)

type Chat struct {
	ID           string    `json:"id" firestore:"id"`
	PostID       string    `json:"post_id" firestore:"postId"`
	ItemTitle    string    `json:"item_title" firestore:"itemTitle"`
	Participants []string  `json:"participants" firestore:"participants"`
	LastMessage  string    `json:"last_message" firestore:"lastMessage"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}

// ChatRoomID derives the deterministic room id for first contact between a
// viewer and an item's owner. The order is fixed: item, then viewer, then
// owner, so both sides of the same conversation resolve to the same document.
func ChatRoomID(itemID, viewerID, ownerID string) string {
	return fmt.Sprintf("%s_%s_%s", itemID, viewerID, ownerID)
}

// RoomStatus classifies a chat room from the viewer's perspective.
type RoomStatus string

const (
	RoomActive         RoomStatus = "active"
	RoomItemGone       RoomStatus = "item_gone"
	RoomNotParticipant RoomStatus = "not_participant"
	RoomPeerLeft       RoomStatus = "peer_left"
)

// ClassifyRoom derives the room status from the participants array, the
// existence of the referenced item, and the viewer's uid. Exactly one status
// applies; sending is only allowed while Active.
func ClassifyRoom(participants []string, itemExists bool, viewerID string) RoomStatus {
	if !itemExists {
		return RoomItemGone
	}

	viewerIn := false
	for _, p := range participants {
		if p == viewerID {
			viewerIn = true
			break
		}
	}
	if !viewerIn {
		// Should be unreachable through normal navigation; defensive case.
		return RoomNotParticipant
	}

	if len(participants) == 1 {
		return RoomPeerLeft
	}

	return RoomActive
}

// CanSend reports whether new messages are accepted in this room state.
func (s RoomStatus) CanSend() bool {
	return s == RoomActive
}

// Reason returns the user-facing explanation for a blocked room, empty when
// sending is allowed.
func (s RoomStatus) Reason() string {
	switch s {
	case RoomItemGone:
		return "The listing no longer exists"
	case RoomNotParticipant:
		return "You are not a participant in this chat room"
	case RoomPeerLeft:
		return "The other user has left this chat room"
	default:
		return ""
	}
}
