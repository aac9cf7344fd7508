package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/services"
)

type fakeUsers struct {
	RegisterFunc      func(ctx context.Context, data models.UserRegistrationData) (*services.AuthResult, error)
	LoginFunc         func(ctx context.Context, data models.UserLoginData) (*services.AuthResult, error)
	RefreshTokenFunc  func(ctx context.Context, token string) (*services.TokenPair, error)
	GetProfileFunc    func(ctx context.Context, userID string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, userID string, data models.UpdateProfileData) (*models.User, error)
	DeleteProfileFunc func(ctx context.Context, userID string) error
}

func (f *fakeUsers) Register(ctx context.Context, data models.UserRegistrationData) (*services.AuthResult, error) {
	return f.RegisterFunc(ctx, data)
}
func (f *fakeUsers) Login(ctx context.Context, data models.UserLoginData) (*services.AuthResult, error) {
	return f.LoginFunc(ctx, data)
}
func (f *fakeUsers) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	return f.RefreshTokenFunc(ctx, token)
}
func (f *fakeUsers) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return f.GetProfileFunc(ctx, userID)
}
func (f *fakeUsers) UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileData) (*models.User, error) {
	return f.UpdateProfileFunc(ctx, userID, data)
}
func (f *fakeUsers) DeleteProfile(ctx context.Context, userID string) error {
	return f.DeleteProfileFunc(ctx, userID)
}

type fakeEvents struct {
	CreateFunc func(ctx context.Context, userID string, data models.CreateEventData) (*models.Event, error)
	GetFunc    func(ctx context.Context, id, userID string) (*models.Event, error)
	ListFunc   func(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error)
	UpdateFunc func(ctx context.Context, id, userID string, patch models.UpdateEventData) (*models.Event, error)
	DeleteFunc func(ctx context.Context, id, userID string) error
}

func (f *fakeEvents) Create(ctx context.Context, userID string, data models.CreateEventData) (*models.Event, error) {
	return f.CreateFunc(ctx, userID, data)
}
func (f *fakeEvents) Get(ctx context.Context, id, userID string) (*models.Event, error) {
	return f.GetFunc(ctx, id, userID)
}
func (f *fakeEvents) List(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error) {
	return f.ListFunc(ctx, userID, window)
}
func (f *fakeEvents) Update(ctx context.Context, id, userID string, patch models.UpdateEventData) (*models.Event, error) {
	return f.UpdateFunc(ctx, id, userID, patch)
}
func (f *fakeEvents) Delete(ctx context.Context, id, userID string) error {
	return f.DeleteFunc(ctx, id, userID)
}

type fakeNotes struct {
	CreateFunc func(ctx context.Context, userID string, data models.CreateNoteData) (*models.Note, error)
	GetFunc    func(ctx context.Context, id, userID string) (*models.Note, error)
	ListFunc   func(ctx context.Context, userID string) ([]*models.Note, error)
	UpdateFunc func(ctx context.Context, id, userID string, patch models.UpdateNoteData) (*models.Note, error)
	DeleteFunc func(ctx context.Context, id, userID string) error
}

func (f *fakeNotes) Create(ctx context.Context, userID string, data models.CreateNoteData) (*models.Note, error) {
	return f.CreateFunc(ctx, userID, data)
}
func (f *fakeNotes) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	return f.GetFunc(ctx, id, userID)
}
func (f *fakeNotes) List(ctx context.Context, userID string) ([]*models.Note, error) {
	return f.ListFunc(ctx, userID)
}
func (f *fakeNotes) Update(ctx context.Context, id, userID string, patch models.UpdateNoteData) (*models.Note, error) {
	return f.UpdateFunc(ctx, id, userID, patch)
}
func (f *fakeNotes) Delete(ctx context.Context, id, userID string) error {
	return f.DeleteFunc(ctx, id, userID)
}

type fakeCompanions struct {
	GetOrCreateFunc    func(ctx context.Context, userID string) (*models.Companion, error)
	ChatFunc           func(ctx context.Context, userID, message string) (*models.Message, error)
	HistoryFunc        func(ctx context.Context, userID string, limit int, before *time.Time) ([]*models.Message, error)
	UpdateSettingsFunc func(ctx context.Context, userID string, settings models.CompanionSettings) (*models.Companion, error)
}

func (f *fakeCompanions) GetOrCreate(ctx context.Context, userID string) (*models.Companion, error) {
	return f.GetOrCreateFunc(ctx, userID)
}
func (f *fakeCompanions) Chat(ctx context.Context, userID, message string) (*models.Message, error) {
	return f.ChatFunc(ctx, userID, message)
}
func (f *fakeCompanions) History(ctx context.Context, userID string, limit int, before *time.Time) ([]*models.Message, error) {
	return f.HistoryFunc(ctx, userID, limit, before)
}
func (f *fakeCompanions) UpdateSettings(ctx context.Context, userID string, settings models.CompanionSettings) (*models.Companion, error) {
	return f.UpdateSettingsFunc(ctx, userID, settings)
}

type fakeAttachments struct {
	CreateFunc      func(ctx context.Context, userID, noteID, fileName string) (*models.Attachment, string, error)
	CompleteFunc    func(ctx context.Context, userID, noteID, id string) (*models.Attachment, error)
	ListFunc        func(ctx context.Context, userID, noteID string) ([]*models.Attachment, error)
	DownloadURLFunc func(ctx context.Context, userID, noteID, id string) (*models.Attachment, string, error)
}

func (f *fakeAttachments) Create(ctx context.Context, userID, noteID, fileName string) (*models.Attachment, string, error) {
	return f.CreateFunc(ctx, userID, noteID, fileName)
}
func (f *fakeAttachments) Complete(ctx context.Context, userID, noteID, id string) (*models.Attachment, error) {
	return f.CompleteFunc(ctx, userID, noteID, id)
}
func (f *fakeAttachments) List(ctx context.Context, userID, noteID string) ([]*models.Attachment, error) {
	return f.ListFunc(ctx, userID, noteID)
}
func (f *fakeAttachments) DownloadURL(ctx context.Context, userID, noteID, id string) (*models.Attachment, string, error) {
	return f.DownloadURLFunc(ctx, userID, noteID, id)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
