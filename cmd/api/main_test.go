package main

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/config"
	"github.com/reachsuite/emailbuilder/internal/app"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	pkgmocks "github.com/reachsuite/emailbuilder/pkg/mocks"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: 2 * time.Second},
		Builder: config.BuilderConfig{
			SessionTTL:     time.Hour,
			HistoryLimit:   100,
			GenerateLimit:  1,
			GenerateWindow: time.Minute,
			SendTestLimit:  1,
			SendTestWindow: time.Minute,
		},
		Auth:        config.AuthConfig{Mode: "none"},
		Environment: "test",
		LogLevel:    "disabled",
	}
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	ctrl := gomock.NewController(t)
	newApp := func(cfg *config.Config, opts ...app.AppOption) app.AppInterface {
		opts = append(opts, app.WithMockDB(db), app.WithMockMailer(pkgmocks.NewMockMailer(ctrl)))
		return app.NewApp(cfg, opts...)
	}

	// only the first registration receives a signal, so no forced shutdown happens
	var registrations int32
	originalNotify := signalNotify
	signalNotify = func(c chan<- os.Signal, _ ...os.Signal) {
		if atomic.AddInt32(&registrations, 1) == 1 {
			go func() {
				time.Sleep(100 * time.Millisecond)
				c <- os.Interrupt
			}()
		}
	}
	defer func() { signalNotify = originalNotify }()

	log := logger.NewTestLogger(t)
	require.NoError(t, runServer(createTestConfig(), log, newApp))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, log.Contains("Starting graceful shutdown"))
	assert.True(t, log.Contains("Server shut down gracefully"))
}

func TestRunServer_InitializeError(t *testing.T) {
	newApp := func(cfg *config.Config, opts ...app.AppOption) app.AppInterface {
		return app.NewApp(cfg, opts...)
	}

	cfg := createTestConfig()
	cfg.Tracing = config.TracingConfig{Enabled: true, SamplingProbability: 1, TraceExporter: "bogus"}

	log := logger.NewTestLogger(t)
	err := runServer(cfg, log, newApp)
	require.Error(t, err)
	assert.True(t, log.Contains("Failed to initialize application"))
}
