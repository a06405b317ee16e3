package entity

import "time"

type User struct {
	ID            string    `json:"id" firestore:"id"`
	Email         string    `json:"email" firestore:"email"`
	Favorites     []string  `json:"favorites" firestore:"favorites"`
	ExpoPushToken string    `json:"expo_push_token,omitempty" firestore:"expoPushToken,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
