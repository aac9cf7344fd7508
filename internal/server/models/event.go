package models

import "time"

// Event is a calendar entry owned by a user.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateEventData is the input to event creation, shared by the API and the
// companion's addEvent intent. Pointer fields are required; nil means the
// field was absent from the request.
type CreateEventData struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    string     `json:"location,omitempty"`
}

// UpdateEventData is a partial event update; nil fields are unchanged.
type UpdateEventData struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// Apply merges the non-nil fields of d into e.
func (d UpdateEventData) Apply(e *Event) {
	if d.Title != nil {
		e.Title = *d.Title
	}
	if d.Description != nil {
		e.Description = *d.Description
	}
	if d.StartTime != nil {
		e.StartTime = *d.StartTime
	}
	if d.EndTime != nil {
		e.EndTime = *d.EndTime
	}
	if d.Location != nil {
		e.Location = *d.Location
	}
}

// TimeRange bounds event listing by start time. Both ends are inclusive;
// a nil range lists everything.
type TimeRange struct {
	From time.Time
	To   time.Time
}
