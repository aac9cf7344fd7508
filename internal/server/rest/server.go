// Package rest exposes the assistant backend as a JSON API over gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/logging"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the account and session surface used by the handlers.
type UserService interface {
	Register(ctx context.Context, data models.UserRegistrationData) (*services.AuthResult, error)
	Login(ctx context.Context, data models.UserLoginData) (*services.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileData) (*models.User, error)
	DeleteProfile(ctx context.Context, userID string) error
}

type EventService interface {
	Create(ctx context.Context, userID string, data models.CreateEventData) (*models.Event, error)
	Get(ctx context.Context, id, userID string) (*models.Event, error)
	List(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error)
	Update(ctx context.Context, id, userID string, patch models.UpdateEventData) (*models.Event, error)
	Delete(ctx context.Context, id, userID string) error
}

type NoteService interface {
	Create(ctx context.Context, userID string, data models.CreateNoteData) (*models.Note, error)
	Get(ctx context.Context, id, userID string) (*models.Note, error)
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, id, userID string, patch models.UpdateNoteData) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
}

type CompanionService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Companion, error)
	Chat(ctx context.Context, userID, message string) (*models.Message, error)
	History(ctx context.Context, userID string, limit int, before *time.Time) ([]*models.Message, error)
	UpdateSettings(ctx context.Context, userID string, settings models.CompanionSettings) (*models.Companion, error)
}

type AttachmentService interface {
	Create(ctx context.Context, userID, noteID, fileName string) (*models.Attachment, string, error)
	Complete(ctx context.Context, userID, noteID, id string) (*models.Attachment, error)
	List(ctx context.Context, userID, noteID string) ([]*models.Attachment, error)
	DownloadURL(ctx context.Context, userID, noteID, id string) (*models.Attachment, string, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the dependencies of the HTTP surface.
type Services struct {
	Users       UserService
	Events      EventService
	Notes       NoteService
	Companions  CompanionService
	Attachments AttachmentService
	DB          Pinger
}

type Server struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte
	svc       Services
	router    *gin.Engine
}

func NewServer(address string, l logging.Logger, secretKey string, svc Services) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		svc:       svc,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
	}

	protected := api.Group("", s.authRequired)
	{
		protected.GET("/users/profile", s.handleGetProfile)
		protected.PUT("/users/profile", s.handleUpdateProfile)
		protected.DELETE("/users/profile", s.handleDeleteProfile)

		protected.POST("/events", s.handleCreateEvent)
		protected.GET("/events", s.handleListEvents)
		protected.GET("/events/:id", s.handleGetEvent)
		protected.PUT("/events/:id", s.handleUpdateEvent)
		protected.DELETE("/events/:id", s.handleDeleteEvent)

		protected.POST("/notes", s.handleCreateNote)
		protected.GET("/notes", s.handleListNotes)
		protected.GET("/notes/:id", s.handleGetNote)
		protected.PUT("/notes/:id", s.handleUpdateNote)
		protected.DELETE("/notes/:id", s.handleDeleteNote)

		protected.POST("/notes/:id/attachments", s.handleCreateAttachment)
		protected.GET("/notes/:id/attachments", s.handleListAttachments)
		protected.GET("/notes/:id/attachments/:attachmentId", s.handleDownloadAttachment)
		protected.POST("/notes/:id/attachments/:attachmentId/complete", s.handleCompleteAttachment)

		protected.POST("/companions/chat", s.handleChat)
		protected.GET("/companions/history", s.handleHistory)
		protected.GET("/companions/settings", s.handleGetCompanion)
		protected.PATCH("/companions/settings", s.handleUpdateSettings)
	}

	return r
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
