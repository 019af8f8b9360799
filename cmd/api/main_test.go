package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/mailcanvas/config"
	"github.com/Notifuse/mailcanvas/internal/app"
	"github.com/Notifuse/mailcanvas/pkg/logger"
)

// fakeApp overrides the lifecycle methods runServer drives
type fakeApp struct {
	app.AppInterface

	initErr     error
	startErr    error
	shutdownErr error

	mu              sync.Mutex
	stopped         chan struct{}
	shutdownTimeout time.Duration
	shutdownCalled  bool
}

func newFakeApp() *fakeApp {
	return &fakeApp{stopped: make(chan struct{})}
}

func (a *fakeApp) Initialize() error { return a.initErr }

func (a *fakeApp) Start() error {
	if a.startErr != nil {
		return a.startErr
	}
	<-a.stopped
	return http.ErrServerClosed
}

func (a *fakeApp) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownCalled = true
	close(a.stopped)
	return a.shutdownErr
}

func (a *fakeApp) SetShutdownTimeout(timeout time.Duration) { a.shutdownTimeout = timeout }

func (a *fakeApp) GetActiveRequestCount() int64 { return 0 }

func useFakeApp(t *testing.T, fake *fakeApp) {
	original := newApp
	newApp = func(cfg *config.Config, opts ...app.AppOption) app.AppInterface { return fake }
	t.Cleanup(func() { newApp = original })
}

// sendSignalOnNotify delivers SIGTERM to the first channel registered
func sendSignalOnNotify(t *testing.T) {
	original := signalNotify
	var once sync.Once
	signalNotify = func(c chan<- os.Signal, sig ...os.Signal) {
		once.Do(func() { c <- syscall.SIGTERM })
	}
	t.Cleanup(func() { signalNotify = original })
}

func TestRunServer_InitializeFailure(t *testing.T) {
	fake := newFakeApp()
	fake.initErr = errors.New("failed to ping database")
	useFakeApp(t, fake)

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "failed to ping database")
}

func TestRunServer_StartFailure(t *testing.T) {
	fake := newFakeApp()
	fake.startErr = errors.New("address already in use")
	useFakeApp(t, fake)

	original := signalNotify
	signalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	t.Cleanup(func() { signalNotify = original })

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "address already in use")
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	fake := newFakeApp()
	useFakeApp(t, fake)
	sendSignalOnNotify(t)

	cfg := &config.Config{Server: config.ServerConfig{ShutdownTimeout: 3 * time.Second}}
	require.NoError(t, runServer(cfg, logger.NewTestLogger(t)))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.True(t, fake.shutdownCalled)
	assert.Equal(t, 3*time.Second, fake.shutdownTimeout)
}

func TestRunServer_ShutdownError(t *testing.T) {
	fake := newFakeApp()
	fake.shutdownErr = errors.New("context deadline exceeded")
	useFakeApp(t, fake)
	sendSignalOnNotify(t)

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "context deadline exceeded")
	assert.Equal(t, 30*time.Second, fake.shutdownTimeout)
}
