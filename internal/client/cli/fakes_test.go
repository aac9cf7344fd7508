package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/client/client"
	"github.com/dmitrijs2005/supreassistant/internal/client/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

type fakeAPI struct {
	token string

	register           func(models.UserRegistrationData) (*client.AuthResponse, error)
	login              func(email, password string) (*client.AuthResponse, error)
	chat               func(message string) (*models.Message, error)
	history            func(limit int) ([]*models.Message, error)
	events             func() ([]*models.Event, error)
	notes              func() ([]*models.Note, error)
	createAttachment   func(noteID, fileName string) (*models.Attachment, string, error)
	completeAttachment func(noteID, attachmentID string) (*models.Attachment, error)
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) Token() string         { return f.token }

func (f *fakeAPI) Register(_ context.Context, d models.UserRegistrationData) (*client.AuthResponse, error) {
	res, err := f.register(d)
	if err == nil {
		f.token = res.Token
	}
	return res, err
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*client.AuthResponse, error) {
	res, err := f.login(email, password)
	if err == nil {
		f.token = res.Token
	}
	return res, err
}

func (f *fakeAPI) Chat(_ context.Context, m string) (*models.Message, error) { return f.chat(m) }

func (f *fakeAPI) History(_ context.Context, limit int) ([]*models.Message, error) {
	return f.history(limit)
}

func (f *fakeAPI) Events(context.Context) ([]*models.Event, error) { return f.events() }
func (f *fakeAPI) Notes(context.Context) ([]*models.Note, error)   { return f.notes() }

func (f *fakeAPI) CreateAttachment(_ context.Context, noteID, fileName string) (*models.Attachment, string, error) {
	return f.createAttachment(noteID, fileName)
}

func (f *fakeAPI) CompleteAttachment(_ context.Context, noteID, attachmentID string) (*models.Attachment, error) {
	return f.completeAttachment(noteID, attachmentID)
}

// newTestApp returns an App reading input from stdin and writing to a buffer.
// The password prompt returns password without touching the terminal.
func newTestApp(t *testing.T, api *fakeAPI, stdin, password string) (*App, *bytes.Buffer, *config.Config) {
	t.Helper()

	oldPw := getPassword
	getPassword = func(io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() { getPassword = oldPw })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	app := &App{
		config: cfg,
		newAPI: func(string, time.Duration) API { return api },
		reader: bufio.NewReader(strings.NewReader(stdin)),
		out:    out,
	}
	return app, out, cfg
}
