package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/reachsuite/emailbuilder/config"
	"github.com/reachsuite/emailbuilder/internal/database"
	"github.com/reachsuite/emailbuilder/internal/domain"
	httpHandler "github.com/reachsuite/emailbuilder/internal/http"
	"github.com/reachsuite/emailbuilder/internal/http/middleware"
	"github.com/reachsuite/emailbuilder/internal/repository"
	"github.com/reachsuite/emailbuilder/internal/service"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	"github.com/reachsuite/emailbuilder/pkg/mailer"
	"github.com/reachsuite/emailbuilder/pkg/ratelimiter"
	"github.com/reachsuite/emailbuilder/pkg/tracing"
	"github.com/reachsuite/emailbuilder/pkg/webhooks"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetMailer() mailer.Mailer
	GetTemplateRepository() domain.TemplateRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitMailer() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mailer mailer.Mailer

	templateRepo domain.TemplateRepository

	templateService *service.TemplateService
	builderService  *service.BuilderService
	sessions        *service.SessionStore
	limiter         *ratelimiter.Limiter

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: shutdownTimeout,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	if err := tracing.Init(&a.config.Tracing, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return nil
}

// InitDB connects to PostgreSQL unless a database was injected
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	password := a.config.Database.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		a.config.Database.Host, a.config.Database.Port, a.config.Database.User,
		a.config.Database.SSLMode, maskedPassword, a.config.Database.DBName))

	db, err := database.Connect(context.Background(), &a.config.Database, a.config.Environment, a.config.Tracing.Enabled)
	if err != nil {
		return err
	}
	if a.config.Tracing.Enabled {
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	a.db = db
	return nil
}

// InitMailer builds the test email transport unless one was injected
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	cfg := a.config.Mailer
	m, err := mailer.New(&mailer.Config{
		Provider:     cfg.Provider,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		SESRegion:    cfg.SESRegion,
		SESAccessKey: cfg.SESAccessKey,
		SESSecretKey: cfg.SESSecretKey,
		FromEmail:    cfg.FromEmail,
		FromName:     cfg.FromName,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}

	a.logger.WithField("provider", cfg.Provider).Info("Test email mailer initialized")
	a.mailer = m
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	a.templateRepo = repository.NewTemplateRepository(a.db)
	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	var notifier domain.TemplateEventNotifier = webhooks.Noop{}
	if a.config.Webhook.URL != "" {
		client := tracing.WrapHTTPClient(&http.Client{Timeout: 10 * time.Second})
		sender, err := webhooks.NewSender(a.config.Webhook.URL, a.config.Webhook.Secret, client, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize webhook sender: %w", err)
		}
		notifier = sender
		a.logger.WithField("url", a.config.Webhook.URL).Info("Template webhooks enabled")
	}

	a.templateService = service.NewTemplateService(a.templateRepo, notifier, a.logger)

	aiClient, err := service.NewAIClient(a.config.AI.Endpoint, a.config.AI.APIKey, a.config.AI.Timeout, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize AI client: %w", err)
	}

	a.sessions = service.NewSessionStore(a.config.Builder.SessionTTL, a.logger)
	a.limiter = ratelimiter.New()
	a.builderService = service.NewBuilderService(
		a.templateService,
		a.sessions,
		aiClient,
		a.mailer,
		a.limiter,
		service.BuilderConfig{
			HistoryLimit:   a.config.Builder.HistoryLimit,
			GenerateLimit:  a.config.Builder.GenerateLimit,
			GenerateWindow: a.config.Builder.GenerateWindow,
			SendTestLimit:  a.config.Builder.SendTestLimit,
			SendTestWindow: a.config.Builder.SendTestWindow,
		},
		a.logger,
	)
	return nil
}

// InitHandlers registers every HTTP route on the mux
func (a *App) InitHandlers() error {
	verifier, err := middleware.NewVerifier(a.config.Auth.Mode, a.config.Auth.PasetoPublicKey, a.config.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize authentication: %w", err)
	}
	auth := middleware.NewAuthMiddleware(verifier)

	httpHandler.NewTemplateHandler(a.templateService, auth, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewBuilderHandler(a.builderService, auth, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewHealthHandler(a.db, a.logger).RegisterRoutes(a.mux)

	a.logger.WithField("auth_mode", a.config.Auth.Mode).Info("HTTP handlers registered")
	return nil
}

// Handler returns the mux wrapped with the server middleware chain
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.Tracing(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	return middleware.CORS(a.config.CORSAllowOrigin)(handler)
}

// Start runs the HTTP server until it is shut down
func (a *App) Start() error {
	handler := a.Handler()

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Warn("HTTP server shutdown did not complete")
	} else {
		a.logger.Info("HTTP server shutdown completed")
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
		a.logger.Info("All requests completed")
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
	}

	if cleanupErr := a.cleanupResources(ctx); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

func (a *App) cleanupResources(ctx context.Context) error {
	a.logger.Info("Cleaning up resources...")

	if a.sessions != nil {
		a.sessions.Stop()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.templateService != nil {
		a.templateService.Stop()
	}

	if a.db != nil {
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err.Error()).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
// Returns true if the server started successfully, false if context expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting email builder application")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitMailer,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

func (a *App) GetTemplateRepository() domain.TemplateRepository {
	return a.templateRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout.String()).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware rejects new requests once shutdown started and tracks in-flight ones
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
