package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/client/client"
	"github.com/dmitrijs2005/supreassistant/internal/client/config"
	"github.com/dmitrijs2005/supreassistant/internal/netx"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// API is the subset of the backend client the commands use.
type API interface {
	SetToken(token string)
	Token() string
	Register(ctx context.Context, data models.UserRegistrationData) (*client.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	Chat(ctx context.Context, message string) (*models.Message, error)
	History(ctx context.Context, limit int) ([]*models.Message, error)
	Events(ctx context.Context) ([]*models.Event, error)
	Notes(ctx context.Context) ([]*models.Note, error)
	CreateAttachment(ctx context.Context, noteID, fileName string) (*models.Attachment, string, error)
	CompleteAttachment(ctx context.Context, noteID, attachmentID string) (*models.Attachment, error)
}

// getSimpleText, getPassword and upload are indirections used to facilitate
// testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	upload        = netx.UploadToPresignedURL
)

// App carries the state shared by all commands of one invocation.
type App struct {
	config *config.Config
	newAPI func(baseURL string, timeout time.Duration) API
	api    API
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires an App that talks to the real backend over HTTP.
func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		newAPI: func(baseURL string, timeout time.Duration) API {
			return client.NewHTTPClient(baseURL, timeout)
		},
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes the command line in args.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *App) connect() {
	a.api = a.newAPI(a.config.ServerURL, a.config.RequestTimeout)
	if a.config.Token != "" {
		a.api.SetToken(a.config.Token)
	}
}
