package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/logging"
	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/llm"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/repomanager"
)

const (
	maxChatMessageLength  = 4000
	maxCompanionName      = 50
	maxSystemPromptLength = 1000

	DefaultHistoryPage = 50
	MaxHistoryPage     = 100

	errChat = "Error processing chat message"
)

// CompanionDefaults are applied when a user's companion is first created.
type CompanionDefaults struct {
	Name         string
	Model        string
	SystemPrompt string
}

// CompanionService drives chat turns and manages the per-user companion.
type CompanionService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	provider     llm.Provider
	events       *EventService
	notes        *NoteService
	defaults     CompanionDefaults
	historyLimit int
	isAllowed    func(model string) bool
	now          func() time.Time
	log          logging.Logger
}

// NewCompanionService builds the service from server config. The default
// system prompt is resolved once here.
func NewCompanionService(db *sql.DB, m repomanager.RepositoryManager, provider llm.Provider,
	events *EventService, notes *NoteService, cfg *config.Config, log logging.Logger) (*CompanionService, error) {

	prompt, err := cfg.DefaultSystemPrompt()
	if err != nil {
		return nil, err
	}
	return &CompanionService{
		db:          db,
		repomanager: m,
		provider:    provider,
		events:      events,
		notes:       notes,
		defaults: CompanionDefaults{
			Name:         cfg.CompanionName,
			Model:        cfg.ActiveModel(),
			SystemPrompt: prompt,
		},
		historyLimit: cfg.HistoryLimit,
		isAllowed:    cfg.IsModelAllowed,
		now:          time.Now,
		log:          log.With("module", "companion"),
	}, nil
}

// GetOrCreate returns the user's companion, creating it with defaults on
// first access. Repeated calls return the same companion.
func (s *CompanionService) GetOrCreate(ctx context.Context, userID string) (*models.Companion, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, common.Internal("Error fetching companion", err)
	}
	return c, nil
}

func (s *CompanionService) getOrCreate(ctx context.Context, userID string) (*models.Companion, error) {
	repo := s.repomanager.Companions(s.db)
	c, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	created, err := repo.CreateIfAbsent(ctx, &models.Companion{
		UserID:       userID,
		Name:         s.defaults.Name,
		Model:        s.defaults.Model,
		SystemPrompt: s.defaults.SystemPrompt,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info(ctx, "companion created", "user_id", userID)
	}
	return repo.GetByUserID(ctx, userID)
}

// Chat runs one conversation turn: it assembles the prompt from the
// companion, recent history and the user's events and notes, asks the
// provider, applies a requested event or note, and stores both messages.
// The side effect, the messages and the interaction timestamp are written
// in one transaction.
func (s *CompanionService) Chat(ctx context.Context, userID, message string) (*models.Message, error) {
	if strings.TrimSpace(message) == "" {
		return nil, common.Validation("Message is required")
	}
	if utf8.RuneCountInString(message) > maxChatMessageLength {
		return nil, common.Validation("Message must be at most 4000 characters")
	}

	companion, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, common.Internal(errChat, err)
	}

	prompt, err := s.buildPrompt(ctx, companion, userID, message)
	if err != nil {
		return nil, common.Internal(errChat, err)
	}

	// a model the active vendor no longer serves falls back to its default
	model := companion.Model
	if !s.isAllowed(model) {
		model = ""
	}

	resp, err := s.provider.GenerateResponse(ctx, model, prompt)
	if err != nil {
		s.log.Error(ctx, "llm request failed", "user_id", userID, "error", err)
		return nil, common.Internal(errChat, err)
	}

	var reply *models.Message
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		switch {
		case resp.Intent == llm.IntentAddEvent && resp.Event != nil:
			if _, err := s.events.create(ctx, tx, userID, *resp.Event); err != nil {
				return err
			}
		case resp.Intent == llm.IntentAddNote && resp.Note != nil:
			if _, err := s.notes.create(ctx, tx, userID, *resp.Note); err != nil {
				return err
			}
		}

		messages := s.repomanager.Messages(tx)
		if err := messages.Create(ctx, &models.Message{CompanionID: companion.ID, Role: models.RoleUser, Content: message}); err != nil {
			return err
		}
		reply = &models.Message{CompanionID: companion.ID, Role: models.RoleAssistant, Content: resp.Content}
		if err := messages.Create(ctx, reply); err != nil {
			return err
		}
		return s.repomanager.Companions(tx).Touch(ctx, companion.ID, s.now())
	})
	if err != nil {
		return nil, common.Internal(errChat, err)
	}

	s.log.Debug(ctx, "chat turn", "user_id", userID, "intent", string(resp.Intent))
	return reply, nil
}

// buildPrompt returns: system prompt, current time, user info, history in
// chronological order, then the new user message.
func (s *CompanionService) buildPrompt(ctx context.Context, c *models.Companion, userID, message string) ([]llm.Message, error) {
	var history []*models.Message
	if s.historyLimit > 0 {
		var err error
		history, err = s.repomanager.Messages(s.db).ListRecent(ctx, c.ID, s.historyLimit, nil)
		if err != nil {
			return nil, err
		}
		slices.Reverse(history)
	}

	info, err := s.userInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := make([]llm.Message, 0, len(history)+4)
	prompt = append(prompt,
		llm.Message{Role: models.RoleSystem, Content: c.SystemPrompt},
		llm.Message{Role: models.RoleSystem, Content: "Current date and time: " + s.now().Format(time.RFC3339)},
		llm.Message{Role: models.RoleSystem, Content: "User info: " + info},
	)
	for _, m := range history {
		prompt = append(prompt, llm.Message{Role: m.Role, Content: m.Content})
	}
	prompt = append(prompt, llm.Message{Role: models.RoleUser, Content: message})
	return prompt, nil
}

type eventInfo struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location,omitempty"`
}

type noteInfo struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type userInfo struct {
	Events []eventInfo `json:"events"`
	Notes  []noteInfo  `json:"notes"`
}

// userInfo serializes the user's events and notes for the model.
func (s *CompanionService) userInfo(ctx context.Context, userID string) (string, error) {
	events, err := s.repomanager.Events(s.db).List(ctx, userID, nil)
	if err != nil {
		return "", err
	}
	notes, err := s.repomanager.Notes(s.db).List(ctx, userID)
	if err != nil {
		return "", err
	}

	info := userInfo{Events: make([]eventInfo, 0, len(events)), Notes: make([]noteInfo, 0, len(notes))}
	for _, e := range events {
		info.Events = append(info.Events, eventInfo{
			Title:       e.Title,
			Description: e.Description,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Location:    e.Location,
		})
	}
	for _, n := range notes {
		info.Notes = append(info.Notes, noteInfo{Title: n.Title, Content: n.Content})
	}

	b, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// History returns up to limit messages, newest first. limit <= 0 means
// DefaultHistoryPage and larger values are capped at MaxHistoryPage. A
// non-nil before keeps only messages created earlier.
func (s *CompanionService) History(ctx context.Context, userID string, limit int, before *time.Time) ([]*models.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryPage
	}
	limit = min(limit, MaxHistoryPage)

	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, common.Internal("Error fetching history", err)
	}
	list, err := s.repomanager.Messages(s.db).ListRecent(ctx, c.ID, limit, before)
	if err != nil {
		return nil, common.Internal("Error fetching history", err)
	}
	return list, nil
}

// UpdateSettings applies a partial settings change to the user's companion.
func (s *CompanionService) UpdateSettings(ctx context.Context, userID string, settings models.CompanionSettings) (*models.Companion, error) {
	if settings.Name != nil {
		name := strings.TrimSpace(*settings.Name)
		if name == "" || utf8.RuneCountInString(name) > maxCompanionName {
			return nil, common.Validation("Name must be between 1 and 50 characters")
		}
		settings.Name = &name
	}
	if settings.SystemPrompt != nil && utf8.RuneCountInString(*settings.SystemPrompt) > maxSystemPromptLength {
		return nil, common.Validation("System prompt must be at most 1000 characters")
	}
	if settings.Model != nil && !s.isAllowed(*settings.Model) {
		return nil, common.Validation("Model is not supported")
	}

	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, common.Internal("Error updating companion settings", err)
	}
	if settings.Name != nil {
		c.Name = *settings.Name
	}
	if settings.SystemPrompt != nil {
		c.SystemPrompt = *settings.SystemPrompt
	}
	if settings.Model != nil {
		c.Model = *settings.Model
	}
	if err := s.repomanager.Companions(s.db).Update(ctx, c); err != nil {
		return nil, common.Internal("Error updating companion settings", err)
	}
	return c, nil
}
