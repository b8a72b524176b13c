package database

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/corkboard/internal/models"
)

func TestCreateBoard_Timestamps(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)

	board := mustCreateBoard(t, repo, "My Project")

	if board.ID == "" {
		t.Fatal("expected generated ID")
	}
	if board.Name != "My Project" {
		t.Errorf("Name = %q, want %q", board.Name, "My Project")
	}
	if !board.CreatedAt.Equal(baseTime) {
		t.Errorf("CreatedAt = %v, want %v", board.CreatedAt, baseTime)
	}
	if !board.UpdatedAt.Equal(board.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want CreatedAt %v", board.UpdatedAt, board.CreatedAt)
	}
	if board.LastOpenedAt == nil || !board.LastOpenedAt.Equal(board.CreatedAt) {
		t.Errorf("LastOpenedAt = %v, want CreatedAt", board.LastOpenedAt)
	}

	got, err := repo.GetBoard(context.Background(), board.ID)
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	if got == nil || got.Name != board.Name || !got.CreatedAt.Equal(board.CreatedAt) {
		t.Errorf("GetBoard() = %+v, want %+v", got, board)
	}
}

func TestGetBoard_Missing(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)

	got, err := repo.GetBoard(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetBoard() = %+v, want nil", got)
	}
}

func TestListBoards_RecentlyOpenedFirst(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	empty, err := repo.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListBoards() on empty store = %v, want empty slice", empty)
	}

	a := mustCreateBoard(t, repo, "A")
	b := mustCreateBoard(t, repo, "B")
	c := mustCreateBoard(t, repo, "C")

	// Newest creation wins while nothing has been reopened
	boards, err := repo.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards() error = %v", err)
	}
	assertBoardOrder(t, boards, c.ID, b.ID, a.ID)

	if err := repo.MarkBoardOpened(ctx, a.ID); err != nil {
		t.Fatalf("MarkBoardOpened() error = %v", err)
	}
	boards, err = repo.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards() error = %v", err)
	}
	assertBoardOrder(t, boards, a.ID, c.ID, b.ID)
}

func TestListBoards_NeverOpenedSortLast(t *testing.T) {
	t.Parallel()
	repo, guard := setupTestRepo(t)
	ctx := context.Background()

	opened := mustCreateBoard(t, repo, "Opened")
	never := mustCreateBoard(t, repo, "Never")
	err := guard.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, `UPDATE boards SET last_opened_at = NULL WHERE id = ?`, never.ID)
		return err
	})
	if err != nil {
		t.Fatalf("clearing last_opened_at: %v", err)
	}

	boards, err := repo.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards() error = %v", err)
	}
	assertBoardOrder(t, boards, opened.ID, never.ID)
	if boards[1].LastOpenedAt != nil {
		t.Errorf("LastOpenedAt = %v, want nil", boards[1].LastOpenedAt)
	}
}

func TestUpdateBoard(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Old")

	updated, err := repo.UpdateBoard(ctx, board.ID, models.BoardPatch{Name: ptr("New")})
	if err != nil {
		t.Fatalf("UpdateBoard() error = %v", err)
	}
	if updated.Name != "New" {
		t.Errorf("Name = %q, want New", updated.Name)
	}
	if !updated.UpdatedAt.After(board.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v -> %v", board.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(board.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", board.CreatedAt, updated.CreatedAt)
	}
	if !updated.LastOpenedAt.Equal(*board.LastOpenedAt) {
		t.Errorf("LastOpenedAt changed by update: %v -> %v", board.LastOpenedAt, updated.LastOpenedAt)
	}

	// An empty patch still touches updatedAt
	touched, err := repo.UpdateBoard(ctx, board.ID, models.BoardPatch{})
	if err != nil {
		t.Fatalf("UpdateBoard(empty) error = %v", err)
	}
	if touched.Name != "New" || !touched.UpdatedAt.After(updated.UpdatedAt) {
		t.Errorf("empty patch result = %+v", touched)
	}
}

func TestUpdateBoard_Missing(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)

	_, err := repo.UpdateBoard(context.Background(), "missing", models.BoardPatch{Name: ptr("x")})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("UpdateBoard() error = %v, want ErrNotFound", err)
	}
	var nf *models.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != models.KindBoard || nf.ID != "missing" {
		t.Errorf("error = %#v, want board NotFoundError", err)
	}
}

func TestMarkBoardOpened(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")

	if err := repo.MarkBoardOpened(ctx, board.ID); err != nil {
		t.Fatalf("MarkBoardOpened() error = %v", err)
	}
	got, err := repo.GetBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	if !got.LastOpenedAt.After(*board.LastOpenedAt) {
		t.Errorf("LastOpenedAt not refreshed: %v -> %v", board.LastOpenedAt, got.LastOpenedAt)
	}

	if err := repo.MarkBoardOpened(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("MarkBoardOpened(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteBoard_Cascades(t *testing.T) {
	t.Parallel()
	repo, guard := setupTestRepo(t)
	ctx := context.Background()

	board := mustCreateBoard(t, repo, "Doomed")
	keep := mustCreateBoard(t, repo, "Keep")
	col := mustCreateColumn(t, repo, board.ID, "Todo")
	mustCreateCard(t, repo, col.ID, "one")
	mustCreateCard(t, repo, col.ID, "two")
	keepCol := mustCreateColumn(t, repo, keep.ID, "Todo")
	mustCreateCard(t, repo, keepCol.ID, "survivor")

	if err := repo.DeleteBoard(ctx, board.ID); err != nil {
		t.Fatalf("DeleteBoard() error = %v", err)
	}

	if got, _ := repo.GetBoard(ctx, board.ID); got != nil {
		t.Error("board still present after delete")
	}
	if got := countRows(t, guard, "columns"); got != 1 {
		t.Errorf("columns left = %d, want 1", got)
	}
	if got := countRows(t, guard, "cards"); got != 1 {
		t.Errorf("cards left = %d, want 1", got)
	}

	// Deleting again is not an error
	if err := repo.DeleteBoard(ctx, board.ID); err != nil {
		t.Errorf("second DeleteBoard() error = %v", err)
	}
}

func assertBoardOrder(t *testing.T, boards []*models.Board, ids ...string) {
	t.Helper()
	if len(boards) != len(ids) {
		t.Fatalf("got %d boards, want %d", len(boards), len(ids))
	}
	for i, id := range ids {
		if boards[i].ID != id {
			t.Errorf("boards[%d] = %s (%s), want %s", i, boards[i].ID, boards[i].Name, id)
		}
	}
}
