package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// QuietLogger drops everything logged through it
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestApp opens a fresh store in a temporary data directory.
// The app is closed by test cleanup.
func SetupTestApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()

	dataDir := t.TempDir()
	opts = append([]app.Option{app.WithLogger(QuietLogger())}, opts...)
	a, err := app.Open(context.Background(),
		filepath.Join(dataDir, "kanban.db"),
		filepath.Join(dataDir, "backups"),
		opts...)
	if err != nil {
		t.Fatalf("Failed to open test app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Logf("Warning: failed to close test app: %v", err)
		}
	})
	return a
}

// CreateTestBoard creates a board and returns its ID
func CreateTestBoard(t *testing.T, a *app.App, name string) string {
	t.Helper()
	board, err := a.Repo().CreateBoard(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return board.ID
}

// CreateTestColumn appends a column to a board and returns its ID
func CreateTestColumn(t *testing.T, a *app.App, boardID, name string) string {
	t.Helper()
	column, err := a.Repo().CreateColumn(context.Background(), boardID, name, nil)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return column.ID
}

// CreateTestCard appends a card to a column and returns its ID
func CreateTestCard(t *testing.T, a *app.App, columnID, title string) string {
	t.Helper()
	card, err := a.Repo().CreateCard(context.Background(), columnID, title, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	return card.ID
}

// GetTestCard loads a card, failing the test when it is missing
func GetTestCard(t *testing.T, a *app.App, id string) *models.Card {
	t.Helper()
	card, err := a.Repo().GetCard(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load card %s: %v", id, err)
	}
	if card == nil {
		t.Fatalf("Card %s not found", id)
	}
	return card
}
