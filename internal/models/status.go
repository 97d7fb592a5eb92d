package models

import "time"

// StatusCheck is an unauthenticated client ping record (legacy endpoint).
type StatusCheck struct {
	ID         string    `db:"id" json:"id"`
	ClientName string    `db:"client_name" json:"client_name"`
	CreatedAt  time.Time `db:"created_at" json:"timestamp"`
}
