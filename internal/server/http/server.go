// Package http exposes the REST surface: resource collections for contacts,
// tasks and subtasks, plus the login, logout, register, refresh and
// account-deletion actions.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

// Service interfaces consumed by the handlers. The concrete services in
// internal/server/services satisfy them; tests substitute fakes.

type AccountsService interface {
	Register(ctx context.Context, email, password, name string) (*services.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	IssueTokens(ctx context.Context, userID string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type ContactsService interface {
	List(ctx context.Context) ([]services.ContactDetail, error)
	Get(ctx context.Context, id int64) (*services.ContactDetail, error)
	Create(ctx context.Context, input services.ContactInput) (*services.ContactDetail, error)
	Update(ctx context.Context, id int64, input services.ContactInput) (*services.ContactDetail, error)
	Delete(ctx context.Context, id int64) error
}

type TasksService interface {
	List(ctx context.Context) ([]services.TaskDetail, error)
	Get(ctx context.Context, id int64) (*services.TaskDetail, error)
	Create(ctx context.Context, input services.TaskInput) (*services.TaskDetail, error)
	Update(ctx context.Context, id int64, input services.TaskInput) (*services.TaskDetail, error)
	Delete(ctx context.Context, id int64) error
}

type SubtasksService interface {
	List(ctx context.Context) ([]models.Subtask, error)
	Get(ctx context.Context, id int64) (*models.Subtask, error)
	Create(ctx context.Context, input services.SubtaskInput) (*models.Subtask, error)
	Update(ctx context.Context, id int64, input services.SubtaskInput) (*models.Subtask, error)
	Delete(ctx context.Context, id int64) error
}

// Server is the taskboard HTTP server.
type Server struct {
	address   string
	logger    logging.Logger
	router    *gin.Engine
	accounts  AccountsService
	contacts  ContactsService
	tasks     TasksService
	subtasks  SubtasksService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, accounts AccountsService,
	contacts ContactsService, tasks TasksService, subtasks SubtasksService,
	secretKey string) *Server {

	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		router:    gin.New(),
		accounts:  accounts,
		contacts:  contacts,
		tasks:     tasks,
		subtasks:  subtasks,
		jwtSecret: []byte(secretKey),
	}

	s.router.Use(gin.Recovery())

	api := s.router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.handleLogout)
		api.POST("/refresh", s.handleRefresh)
		api.DELETE("/account", s.authRequired(), s.handleDeleteAccount)

		api.GET("/contacts", s.handleContactList)
		api.POST("/contacts", s.handleContactCreate)
		api.GET("/contacts/:id", s.handleContactGet)
		api.PUT("/contacts/:id", s.handleContactUpdate)
		api.DELETE("/contacts/:id", s.handleContactDelete)

		api.GET("/tasks", s.handleTaskList)
		api.POST("/tasks", s.handleTaskCreate)
		api.GET("/tasks/:id", s.handleTaskGet)
		api.PUT("/tasks/:id", s.handleTaskUpdate)
		api.DELETE("/tasks/:id", s.handleTaskDelete)

		api.GET("/subtasks", s.handleSubtaskList)
		api.POST("/subtasks", s.handleSubtaskCreate)
		api.GET("/subtasks/:id", s.handleSubtaskGet)
		api.PUT("/subtasks/:id", s.handleSubtaskUpdate)
		api.DELETE("/subtasks/:id", s.handleSubtaskDelete)
	}

	return s
}

// Handler returns the underlying router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
