package models

import "time"

// Companion is the per-user assistant configuration. Each user has at most one.
type Companion struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Name              string    `json:"name"`
	Model             string    `json:"model"`
	SystemPrompt      string    `json:"systemPrompt"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CompanionSettings is a partial companion update; nil fields are unchanged.
type CompanionSettings struct {
	Name         *string `json:"name,omitempty"`
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// Role tags who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one immutable turn of a companion conversation.
type Message struct {
	ID          string    `json:"id"`
	CompanionID string    `json:"companionId"`
	Role        Role      `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
