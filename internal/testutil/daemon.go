package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/daemon"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
// Unix socket paths are length limited, so the directory lives directly
// under the system temp dir instead of t.TempDir().
func GetTestSocketPath(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "cb")
	if err != nil {
		t.Fatalf("Failed to create socket dir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})

	return filepath.Join(dir, "t.sock")
}

// SetupTestDaemon serves a's registry on a temporary socket.
// It starts the server in a goroutine and waits for it to be ready.
// Returns the server and socket path. Cleanup is automatic via t.Cleanup().
func SetupTestDaemon(t *testing.T, a *app.App) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(socketPath, a.Registry, QuietLogger())
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("Server error: %v", err)
		}
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Wait for the server to answer (max 2 seconds)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		dialCtx, dialCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		client, err := daemon.Dial(dialCtx, socketPath)
		dialCancel()
		if err == nil {
			_ = client.Close()
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for daemon socket to be created")
	return nil, ""
}
