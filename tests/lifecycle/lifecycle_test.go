package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/lifecycle"
)

func TestStartupReadiness(t *testing.T) {
	coordinator := lifecycle.New()

	var started atomic.Int32
	coordinator.OnStartup(func() { started.Add(1) })
	coordinator.OnStartup(func() { started.Add(1) })

	if coordinator.Ready() {
		t.Error("Ready() = true before WaitForStartup")
	}

	coordinator.WaitForStartup()

	if !coordinator.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
	if started.Load() != 2 {
		t.Errorf("startup hooks ran %d times, want 2", started.Load())
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	coordinator := lifecycle.New()

	var cleaned atomic.Bool
	coordinator.OnShutdown(func() {
		<-coordinator.Context().Done()
		cleaned.Store(true)
	})

	if err := coordinator.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !cleaned.Load() {
		t.Error("shutdown hook did not run")
	}

	select {
	case <-coordinator.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	coordinator := lifecycle.New()

	release := make(chan struct{})
	coordinator.OnShutdown(func() { <-release })
	defer close(release)

	if err := coordinator.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("Shutdown() error = nil, want timeout error")
	}
}
