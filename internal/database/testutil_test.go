package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// setupTestGuard opens a migrated store in a temp directory.
// Every test gets its own file, so tests may run in parallel.
func setupTestGuard(t *testing.T) (*Guard, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kanban.db")

	guard, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := guard.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return guard, path
}

// setupTestRepo returns a repository whose clock advances one second per call,
// so every mutation gets a distinct, predictable timestamp.
func setupTestRepo(t *testing.T) (*Repository, *Guard) {
	t.Helper()
	guard, _ := setupTestGuard(t)
	return NewRepository(guard, WithClock(steppingClock(baseTime))), guard
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func steppingClock(start time.Time) Clock {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func mustCreateBoard(t *testing.T, repo *Repository, name string) *models.Board {
	t.Helper()
	board, err := repo.CreateBoard(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create board %q: %v", name, err)
	}
	return board
}

func mustCreateColumn(t *testing.T, repo *Repository, boardID, name string) *models.Column {
	t.Helper()
	col, err := repo.CreateColumn(context.Background(), boardID, name, nil)
	if err != nil {
		t.Fatalf("Failed to create column %q: %v", name, err)
	}
	return col
}

func mustCreateCard(t *testing.T, repo *Repository, columnID, title string) *models.Card {
	t.Helper()
	card, err := repo.CreateCard(context.Background(), columnID, title, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create card %q: %v", title, err)
	}
	return card
}

func ptr[T any](v T) *T {
	return &v
}

func columnNames(cols []*models.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func cardTitles(cards []*models.Card) []string {
	titles := make([]string, len(cards))
	for i, c := range cards {
		titles[i] = c.Title
	}
	return titles
}

func countRows(t *testing.T, guard *Guard, table string) int {
	t.Helper()
	var n int
	err := guard.Run(context.Background(), func(conn Conn) error {
		return conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	})
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
