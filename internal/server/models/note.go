package models

import "time"

// Note is a free-form text record owned by a user.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateNoteData is the input to note creation, shared by the API and the
// companion's addNote intent.
type CreateNoteData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteData is a partial note update; nil fields are unchanged.
type UpdateNoteData struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Apply merges the non-nil fields of d into n.
func (d UpdateNoteData) Apply(n *Note) {
	if d.Title != nil {
		n.Title = *d.Title
	}
	if d.Content != nil {
		n.Content = *d.Content
	}
}
