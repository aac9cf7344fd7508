package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/repomanager"
)

// EventService implements owner-scoped calendar CRUD. Records of other users
// are reported as not found.
type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager) *EventService {
	return &EventService{db: db, repomanager: m}
}

// ValidateEvent checks creation input: a non-blank title, a description
// (possibly empty) and a start strictly before the end.
func ValidateEvent(data models.CreateEventData) error {
	if strings.TrimSpace(data.Title) == "" {
		return common.Validation("Title is required")
	}
	if data.Description == nil {
		return common.Validation("Description is required")
	}
	if data.StartTime == nil || data.EndTime == nil {
		return common.Validation("Start time and end time are required")
	}
	if !data.StartTime.Before(*data.EndTime) {
		return common.Validation("Start time must be before end time")
	}
	return nil
}

func eventError(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NotFound("Event not found")
	}
	return common.Internal(msg, err)
}

func (s *EventService) Create(ctx context.Context, userID string, data models.CreateEventData) (*models.Event, error) {
	return s.create(ctx, s.db, userID, data)
}

// create runs on db, which may be a transaction owned by the caller.
func (s *EventService) create(ctx context.Context, db dbx.DBTX, userID string, data models.CreateEventData) (*models.Event, error) {
	if err := ValidateEvent(data); err != nil {
		return nil, err
	}
	e := &models.Event{
		UserID:      userID,
		Title:       strings.TrimSpace(data.Title),
		Description: *data.Description,
		StartTime:   *data.StartTime,
		EndTime:     *data.EndTime,
		Location:    data.Location,
	}
	if err := s.repomanager.Events(db).Create(ctx, e); err != nil {
		return nil, common.Internal("Error creating event", err)
	}
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id, userID string) (*models.Event, error) {
	if !validID(id) {
		return nil, common.NotFound("Event not found")
	}
	e, err := s.repomanager.Events(s.db).Get(ctx, id, userID)
	if err != nil {
		return nil, eventError("Error fetching event", err)
	}
	return e, nil
}

// List returns the user's events; a non-nil window keeps only events that
// start inside it.
func (s *EventService) List(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error) {
	if window != nil && window.To.Before(window.From) {
		return nil, common.Validation("startDate must not be after endDate")
	}
	list, err := s.repomanager.Events(s.db).List(ctx, userID, window)
	if err != nil {
		return nil, common.Internal("Error fetching events", err)
	}
	return list, nil
}

// Update merges patch into the stored event. The merged record must still
// satisfy the creation rules.
func (s *EventService) Update(ctx context.Context, id, userID string, patch models.UpdateEventData) (*models.Event, error) {
	e, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(e)
	if err := ValidateEvent(models.CreateEventData{
		Title:       e.Title,
		Description: &e.Description,
		StartTime:   &e.StartTime,
		EndTime:     &e.EndTime,
	}); err != nil {
		return nil, err
	}
	e.Title = strings.TrimSpace(e.Title)
	if err := s.repomanager.Events(s.db).Update(ctx, e); err != nil {
		return nil, eventError("Error updating event", err)
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return common.NotFound("Event not found")
	}
	if err := s.repomanager.Events(s.db).Delete(ctx, id, userID); err != nil {
		return eventError("Error deleting event", err)
	}
	return nil
}
