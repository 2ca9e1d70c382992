package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	log, buf := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug"},
		Storage: config.StorageConfig{
			Backend: config.BackendFile,
			Path:    filepath.Join(t.TempDir(), "reviewer.json"),
		},
	}, log)
	require.NoError(t, err)
	defer app.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.startHTTPServer(ctx, http.NotFoundHandler())
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, buf.String(), "Server shutdown completed")
}
