package entity

import "time"

// EmailVerification is a pending registration code. Codes are single-use and
// expire server-side; the document is deleted on successful confirmation.
type EmailVerification struct {
	Email     string    `json:"email" firestore:"email"`
	Code      string    `json:"code" firestore:"code"`
	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func (v *EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
