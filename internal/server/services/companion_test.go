package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/logging"
	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/llm"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	resp     *llm.Response
	err      error
	calls    int
	model    string
	messages []llm.Message
}

func (p *stubProvider) GenerateResponse(_ context.Context, model string, messages []llm.Message) (*llm.Response, error) {
	p.calls++
	p.model = model
	p.messages = messages
	if p.err != nil {
		return nil, p.err
	}
	return p.resp, nil
}

var chatNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newCompanionService(t *testing.T, p *stubProvider) (*CompanionService, *memStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	store := newMemStore()
	m := &fakeRepoManager{s: store}
	cfg := &config.Config{
		LLMProvider:           config.ProviderOpenAI,
		OpenAIModel:           "gpt-4o",
		CompanionName:         "AI Assistant",
		CompanionSystemPrompt: "You are a helpful assistant.",
		AllowedModels:         []string{"gpt-4o", "gpt-4o-mini"},
		HistoryLimit:          10,
	}
	s, err := NewCompanionService(db, m, p, NewEventService(db, m), NewNoteService(db, m), cfg, logging.Nop{})
	require.NoError(t, err)
	s.now = func() time.Time { return chatNow }
	return s, store, mock
}

func companionMessages(store *memStore, companionID string) []*models.Message {
	var out []*models.Message
	for _, m := range store.messages {
		if m.CompanionID == companionID {
			out = append(out, m)
		}
	}
	return out
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	s, store, _ := newCompanionService(t, &stubProvider{})

	first, err := s.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "AI Assistant", first.Name)
	assert.Equal(t, "gpt-4o", first.Model)
	assert.Equal(t, "You are a helpful assistant.", first.SystemPrompt)

	second, err := s.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.companions, 1)
}

func TestGetOrCreate_StorageFailure(t *testing.T) {
	s, store, _ := newCompanionService(t, &stubProvider{})
	store.fail["companions.get"] = errors.New("db down")

	_, err := s.GetOrCreate(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestChat_GeneralQueryStoresTurn(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{Intent: llm.IntentGeneralQuery, Content: "Sure, noted."}}
	s, store, mock := newCompanionService(t, p)
	ctx := context.Background()

	c, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	before := c.LastInteractionAt
	msgs := (*memMessages)(store)
	for _, m := range []models.Message{
		{CompanionID: c.ID, Role: models.RoleUser, Content: "hi"},
		{CompanionID: c.ID, Role: models.RoleAssistant, Content: "hello"},
		{CompanionID: c.ID, Role: models.RoleUser, Content: "how are you"},
	} {
		require.NoError(t, msgs.Create(ctx, &m))
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	reply, err := s.Chat(ctx, "u1", "Remember I like tea")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, "Sure, noted.", reply.Content)

	stored := companionMessages(store, c.ID)
	require.Len(t, stored, 5)
	assert.Equal(t, models.RoleUser, stored[3].Role)
	assert.Equal(t, "Remember I like tea", stored[3].Content)
	assert.Equal(t, models.RoleAssistant, stored[4].Role)
	assert.Equal(t, reply.ID, stored[4].ID)
	assert.True(t, stored[3].CreatedAt.Before(stored[4].CreatedAt))

	after, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, after.LastInteractionAt.After(before))
	assert.True(t, after.LastInteractionAt.Equal(chatNow))

	assert.Equal(t, "gpt-4o", p.model)
	require.Len(t, p.messages, 7)
	assert.Equal(t, llm.Message{Role: models.RoleSystem, Content: "You are a helpful assistant."}, p.messages[0])
	assert.Equal(t, "Current date and time: 2026-03-10T12:00:00Z", p.messages[1].Content)
	assert.True(t, strings.HasPrefix(p.messages[2].Content, "User info: "))
	assert.Equal(t, []string{"hi", "hello", "how are you"},
		[]string{p.messages[3].Content, p.messages[4].Content, p.messages[5].Content})
	assert.Equal(t, llm.Message{Role: models.RoleUser, Content: "Remember I like tea"}, p.messages[6])
}

func TestChat_PromptCarriesLastTenMessages(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{Intent: llm.IntentGeneralQuery, Content: "ok"}}
	s, store, mock := newCompanionService(t, p)
	ctx := context.Background()

	c, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	msgs := (*memMessages)(store)
	var seeded []string
	for i := 0; i < 15; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		content := string(rune('a' + i))
		seeded = append(seeded, content)
		require.NoError(t, msgs.Create(ctx, &models.Message{CompanionID: c.ID, Role: role, Content: content}))
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Chat(ctx, "u1", "next")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, p.messages, 3+10+1)
	var history []string
	for _, m := range p.messages[3:13] {
		history = append(history, m.Content)
	}
	assert.Equal(t, seeded[5:], history, "most recent ten, oldest first")
	assert.Equal(t, models.RoleAssistant, p.messages[3].Role)
	assert.Equal(t, llm.Message{Role: models.RoleUser, Content: "next"}, p.messages[13])
}

func TestChat_ModelOfAnotherVendorFallsBackToDefault(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{Intent: llm.IntentGeneralQuery, Content: "ok"}}
	s, _, mock := newCompanionService(t, p)
	ctx := context.Background()

	_, err := s.UpdateSettings(ctx, "u1", models.CompanionSettings{Model: ptr("gemini-1.5-flash")})
	require.ErrorIs(t, err, common.ErrorValidation)

	c, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	c.Model = "gemini-1.5-flash"
	require.NoError(t, s.repomanager.Companions(nil).Update(ctx, c))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Chat(ctx, "u1", "hello")
	require.NoError(t, err)
	assert.Empty(t, p.model)

	_, err = s.UpdateSettings(ctx, "u1", models.CompanionSettings{Model: ptr("gpt-4o-mini")})
	require.NoError(t, err)
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Chat(ctx, "u1", "hello again")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.model)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChat_UserInfoCarriesEventsAndNotes(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{Intent: llm.IntentGeneralQuery, Content: "ok"}}
	s, _, mock := newCompanionService(t, p)
	ctx := context.Background()

	_, err := s.events.Create(ctx, "u1", models.CreateEventData{Title: "Dentist", Description: ptr(""), StartTime: &t1, EndTime: &t2})
	require.NoError(t, err)
	_, err = s.notes.Create(ctx, "u1", models.CreateNoteData{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Chat(ctx, "u1", "what do I have?")
	require.NoError(t, err)

	raw := strings.TrimPrefix(p.messages[2].Content, "User info: ")
	var info struct {
		Events []struct {
			Title     string    `json:"title"`
			StartTime time.Time `json:"startTime"`
		} `json:"events"`
		Notes []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"notes"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &info))
	require.Len(t, info.Events, 1)
	assert.Equal(t, "Dentist", info.Events[0].Title)
	assert.True(t, info.Events[0].StartTime.Equal(t1))
	require.Len(t, info.Notes, 1)
	assert.Equal(t, "milk", info.Notes[0].Content)
}

func TestChat_AddEvent(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{
		Intent:  llm.IntentAddEvent,
		Content: "Event added: Dentist",
		Event:   &models.CreateEventData{Title: "Dentist", Description: ptr(""), StartTime: &t1, EndTime: &t2},
	}}
	s, store, mock := newCompanionService(t, p)

	mock.ExpectBegin()
	mock.ExpectCommit()
	reply, err := s.Chat(context.Background(), "u1", "Book dentist tomorrow 9-10")
	require.NoError(t, err)
	assert.Equal(t, "Event added: Dentist", reply.Content)

	require.Len(t, store.events, 1)
	e := store.events[0]
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, "Dentist", e.Title)
	assert.Equal(t, "", e.Description)
	assert.Equal(t, "", e.Location)
	assert.True(t, e.StartTime.Equal(t1))
	assert.True(t, e.EndTime.Equal(t2))
	assert.Len(t, store.messages, 2)
}

func TestChat_AddNote(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{
		Intent:  llm.IntentAddNote,
		Content: "Note added: Groceries; Details: milk",
		Note:    &models.CreateNoteData{Title: "Groceries", Content: "milk"},
	}}
	s, store, mock := newCompanionService(t, p)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := s.Chat(context.Background(), "u1", "note: buy milk")
	require.NoError(t, err)

	require.Len(t, store.notes, 1)
	assert.Equal(t, "Groceries", store.notes[0].Title)
	assert.Equal(t, "milk", store.notes[0].Content)
}

func TestChat_InvalidEventFromModelRollsBack(t *testing.T) {
	p := &stubProvider{resp: &llm.Response{
		Intent:  llm.IntentAddEvent,
		Content: "Event added",
		Event:   &models.CreateEventData{Title: "Backwards", Description: ptr(""), StartTime: &t2, EndTime: &t1},
	}}
	s, store, mock := newCompanionService(t, p)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := s.Chat(context.Background(), "u1", "book something odd")
	require.ErrorIs(t, err, common.ErrorValidation)
	msg, _ := common.Message(err)
	assert.Equal(t, "Start time must be before end time", msg)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Empty(t, store.events)
	assert.Empty(t, store.messages)
}

func TestChat_Failures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		vendorErr := errors.New("vendor unavailable")
		s, store, _ := newCompanionService(t, &stubProvider{err: vendorErr})

		_, err := s.Chat(context.Background(), "u1", "hello")
		require.ErrorIs(t, err, common.ErrorInternal)
		assert.ErrorIs(t, err, vendorErr)
		msg, _ := common.Message(err)
		assert.Equal(t, "Error processing chat message", msg)
		assert.Empty(t, store.messages)
	})

	t.Run("events unavailable", func(t *testing.T) {
		p := &stubProvider{}
		s, store, _ := newCompanionService(t, p)
		store.fail["events.list"] = errors.New("db down")

		_, err := s.Chat(context.Background(), "u1", "hello")
		assert.ErrorIs(t, err, common.ErrorInternal)
		assert.Zero(t, p.calls)
	})

	t.Run("message write fails", func(t *testing.T) {
		s, store, mock := newCompanionService(t, &stubProvider{resp: &llm.Response{Intent: llm.IntentGeneralQuery, Content: "ok"}})
		store.fail["messages.create"] = errors.New("db down")

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := s.Chat(context.Background(), "u1", "hello")
		assert.ErrorIs(t, err, common.ErrorInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestChat_MessageValidation(t *testing.T) {
	p := &stubProvider{}
	s, _, _ := newCompanionService(t, p)

	for name, msg := range map[string]string{
		"empty":    "",
		"blank":    "   ",
		"too long": strings.Repeat("a", 4001),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Chat(context.Background(), "u1", msg)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
	assert.Zero(t, p.calls)
}

func TestHistory(t *testing.T) {
	s, store, _ := newCompanionService(t, &stubProvider{})
	ctx := context.Background()
	c, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	msgs := (*memMessages)(store)
	for i := 0; i < 120; i++ {
		m := &models.Message{CompanionID: c.ID, Role: models.RoleUser, Content: "m"}
		if i == 119 {
			m.Content = "latest"
		}
		require.NoError(t, msgs.Create(ctx, m))
	}

	one, err := s.History(ctx, "u1", 1, nil)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "latest", one[0].Content)

	def, err := s.History(ctx, "u1", 0, nil)
	require.NoError(t, err)
	assert.Len(t, def, DefaultHistoryPage)

	capped, err := s.History(ctx, "u1", 1000, nil)
	require.NoError(t, err)
	assert.Len(t, capped, MaxHistoryPage)

	older, err := s.History(ctx, "u1", 5, &one[0].CreatedAt)
	require.NoError(t, err)
	require.Len(t, older, 5)
	assert.True(t, older[0].CreatedAt.Before(one[0].CreatedAt))

	empty, err := s.History(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateSettings(t *testing.T) {
	s, _, _ := newCompanionService(t, &stubProvider{})
	ctx := context.Background()

	tests := []struct {
		name     string
		settings models.CompanionSettings
		msg      string
	}{
		{"blank name", models.CompanionSettings{Name: ptr("  ")}, "Name must be between 1 and 50 characters"},
		{"long name", models.CompanionSettings{Name: ptr(strings.Repeat("n", 51))}, "Name must be between 1 and 50 characters"},
		{"long prompt", models.CompanionSettings{SystemPrompt: ptr(strings.Repeat("p", 1001))}, "System prompt must be at most 1000 characters"},
		{"unknown model", models.CompanionSettings{Model: ptr("gpt-2")}, "Model is not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateSettings(ctx, "u1", tt.settings)
			require.ErrorIs(t, err, common.ErrorValidation)
			msg, _ := common.Message(err)
			assert.Equal(t, tt.msg, msg)
		})
	}

	updated, err := s.UpdateSettings(ctx, "u1", models.CompanionSettings{Name: ptr(" Jarvis "), Model: ptr("gpt-4o-mini")})
	require.NoError(t, err)
	assert.Equal(t, "Jarvis", updated.Name)
	assert.Equal(t, "gpt-4o-mini", updated.Model)
	assert.Equal(t, "You are a helpful assistant.", updated.SystemPrompt)

	got, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)
	assert.Equal(t, "gpt-4o-mini", got.Model)
}
