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

// NoteService implements owner-scoped note CRUD.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// ValidateNote requires a non-blank title.
func ValidateNote(data models.CreateNoteData) error {
	if strings.TrimSpace(data.Title) == "" {
		return common.Validation("Title is required")
	}
	return nil
}

func noteError(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NotFound("Note not found")
	}
	return common.Internal(msg, err)
}

func (s *NoteService) Create(ctx context.Context, userID string, data models.CreateNoteData) (*models.Note, error) {
	return s.create(ctx, s.db, userID, data)
}

func (s *NoteService) create(ctx context.Context, db dbx.DBTX, userID string, data models.CreateNoteData) (*models.Note, error) {
	if err := ValidateNote(data); err != nil {
		return nil, err
	}
	n := &models.Note{UserID: userID, Title: strings.TrimSpace(data.Title), Content: data.Content}
	if err := s.repomanager.Notes(db).Create(ctx, n); err != nil {
		return nil, common.Internal("Error creating note", err)
	}
	return n, nil
}

func (s *NoteService) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	if !validID(id) {
		return nil, common.NotFound("Note not found")
	}
	n, err := s.repomanager.Notes(s.db).Get(ctx, id, userID)
	if err != nil {
		return nil, noteError("Error fetching note", err)
	}
	return n, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	list, err := s.repomanager.Notes(s.db).List(ctx, userID)
	if err != nil {
		return nil, common.Internal("Error fetching notes", err)
	}
	return list, nil
}

func (s *NoteService) Update(ctx context.Context, id, userID string, patch models.UpdateNoteData) (*models.Note, error) {
	n, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)
	if err := ValidateNote(models.CreateNoteData{Title: n.Title}); err != nil {
		return nil, err
	}
	n.Title = strings.TrimSpace(n.Title)
	if err := s.repomanager.Notes(s.db).Update(ctx, n); err != nil {
		return nil, noteError("Error updating note", err)
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return common.NotFound("Note not found")
	}
	if err := s.repomanager.Notes(s.db).Delete(ctx, id, userID); err != nil {
		return noteError("Error deleting note", err)
	}
	return nil
}
