package chat

import "time"

// Session captures a transient anonymous conversation. It lives only in
// memory and disappears with its transcript when ended or left idle.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}
