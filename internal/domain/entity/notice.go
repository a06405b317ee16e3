package entity

import "time"

type Notice struct {
	ID        string    `json:"id" firestore:"id"`
	Title     string    `json:"title" firestore:"title"`
	Content   string    `json:"content" firestore:"content"`
	AuthorID  string    `json:"author_id" firestore:"authorId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
