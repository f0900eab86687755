package models

import "time"

type Alert struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"` // "goal"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
