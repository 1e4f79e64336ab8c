package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/model"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
	"github.com/polkiloo/marketplace/internal/usecase"
	"github.com/polkiloo/marketplace/internal/worker"
)

func newTestDispatcher() *worker.NotificationDispatcher {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewNotificationDispatcher(&testhelpers.NotificationRepositoryStub{}, 1, 4, logger)
}

func newTestCommission(history []model.CommissionChange) *usecase.CommissionUseCase {
	return usecase.NewCommissionUseCase(
		&config.Config{CommissionRate: 0.05},
		&testhelpers.CommissionRepositoryStub{Changes: history},
	)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewNotificationDispatcherUsesConfig(t *testing.T) {
	dispatcher := newNotificationDispatcher(dispatcherParams{
		Notifications: &testhelpers.NotificationRepositoryStub{},
		Config:        &config.Config{NotificationWorkers: 2, NotificationQueueSize: 8},
		Logger:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if dispatcher == nil {
		t.Fatal("expected dispatcher instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Dispatcher: newTestDispatcher(),
		Commission: newTestCommission(nil),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleHydratesCommission(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	commission := newTestCommission([]model.CommissionChange{{ID: 1, Rate: 0.08, ChangedBy: 1}})
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Server:     server,
		Dispatcher: newTestDispatcher(),
		Commission: commission,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	defer func() { _ = hook.OnStop(context.Background()) }()

	if rate := commission.Rate(); rate != 0.08 {
		t.Fatalf("expected hydrated rate 0.08, got %v", rate)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Server:     &http.Server{Addr: "bad addr"},
		Dispatcher: newTestDispatcher(),
		Commission: newTestCommission(nil),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
