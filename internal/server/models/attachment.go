package models

import "time"

// Upload states of an attachment.
const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// Attachment describes a file attached to a note. The bytes live in object
// storage under StorageKey; clients move them with presigned URLs.
type Attachment struct {
	ID           string    `json:"id"`
	NoteID       string    `json:"noteId"`
	UserID       string    `json:"userId"`
	FileName     string    `json:"fileName"`
	StorageKey   string    `json:"-"`
	UploadStatus string    `json:"uploadStatus"`
	CreatedAt    time.Time `json:"createdAt"`
}
