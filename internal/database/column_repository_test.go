package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thenoetrevino/corkboard/internal/models"
)

func TestCreateColumn_AutoOrder(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	board := mustCreateBoard(t, repo, "Board")

	for i, name := range []string{"To Do", "In Progress", "Done"} {
		col := mustCreateColumn(t, repo, board.ID, name)
		if want := float64(i + 1); col.Order != want {
			t.Errorf("%s order = %v, want %v", name, col.Order, want)
		}
		if col.Archived {
			t.Errorf("%s created archived", name)
		}
	}
}

func TestCreateColumn_ExplicitOrderAndScope(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	other := mustCreateBoard(t, repo, "Other")

	col, err := repo.CreateColumn(ctx, board.ID, "Ten", ptr(10.0))
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	if col.Order != 10 {
		t.Errorf("order = %v, want 10", col.Order)
	}
	if next := mustCreateColumn(t, repo, board.ID, "Next"); next.Order != 11 {
		t.Errorf("auto order after explicit 10 = %v, want 11", next.Order)
	}

	// Auto order is scoped to the board
	if first := mustCreateColumn(t, repo, other.ID, "First"); first.Order != 1 {
		t.Errorf("first column of other board order = %v, want 1", first.Order)
	}
}

func TestCreateColumn_ArchivedCountsForAutoOrder(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")

	col := mustCreateColumn(t, repo, board.ID, "Old")
	if _, err := repo.UpdateColumn(ctx, col.ID, models.ColumnPatch{Archived: ptr(true)}); err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	if next := mustCreateColumn(t, repo, board.ID, "New"); next.Order != 2 {
		t.Errorf("order = %v, want 2", next.Order)
	}
}

func TestListColumns_ActiveAscending(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")

	a := mustCreateColumn(t, repo, board.ID, "A")
	b := mustCreateColumn(t, repo, board.ID, "B")
	mustCreateColumn(t, repo, board.ID, "C")

	if _, err := repo.UpdateColumn(ctx, a.ID, models.ColumnPatch{Order: ptr(5.0)}); err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	if _, err := repo.UpdateColumn(ctx, b.ID, models.ColumnPatch{Archived: ptr(true)}); err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}

	cols, err := repo.ListColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListColumns() error = %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A"}, columnNames(cols)); diff != "" {
		t.Errorf("ListColumns() mismatch (-want +got):\n%s", diff)
	}

	// Archived columns stay reachable by id
	got, err := repo.GetColumn(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetColumn() error = %v", err)
	}
	if got == nil || !got.Archived {
		t.Errorf("GetColumn(archived) = %+v", got)
	}
}

func TestListColumns_UnknownBoard(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)

	cols, err := repo.ListColumns(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ListColumns() error = %v", err)
	}
	if cols == nil || len(cols) != 0 {
		t.Errorf("ListColumns() = %v, want empty slice", cols)
	}
}

func TestUpdateColumn_Partial(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	col := mustCreateColumn(t, repo, board.ID, "Todo")

	renamed, err := repo.UpdateColumn(ctx, col.ID, models.ColumnPatch{Name: ptr("Backlog")})
	if err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	if renamed.Name != "Backlog" || renamed.Order != col.Order || renamed.Archived {
		t.Errorf("rename touched other fields: %+v", renamed)
	}
	if !renamed.UpdatedAt.After(col.UpdatedAt) {
		t.Error("UpdatedAt not refreshed")
	}

	moved, err := repo.UpdateColumn(ctx, col.ID, models.ColumnPatch{Order: ptr(0.5)})
	if err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	if moved.Name != "Backlog" || moved.Order != 0.5 {
		t.Errorf("reorder result = %+v", moved)
	}

	if _, err := repo.UpdateColumn(ctx, "missing", models.ColumnPatch{Name: ptr("x")}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateColumn(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteColumn_CascadesCards(t *testing.T) {
	t.Parallel()
	repo, guard := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	col := mustCreateColumn(t, repo, board.ID, "Todo")
	mustCreateCard(t, repo, col.ID, "a")
	mustCreateCard(t, repo, col.ID, "b")

	if err := repo.DeleteColumn(ctx, col.ID); err != nil {
		t.Fatalf("DeleteColumn() error = %v", err)
	}
	if got := countRows(t, guard, "cards"); got != 0 {
		t.Errorf("cards left = %d, want 0", got)
	}
	if err := repo.DeleteColumn(ctx, col.ID); err != nil {
		t.Errorf("second DeleteColumn() error = %v", err)
	}
}

func TestReorderColumns(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	a := mustCreateColumn(t, repo, board.ID, "A")
	b := mustCreateColumn(t, repo, board.ID, "B")
	c := mustCreateColumn(t, repo, board.ID, "C")

	err := repo.ReorderColumns(ctx, []models.OrderUpdate{
		{ID: c.ID, Order: 1},
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 3},
	})
	if err != nil {
		t.Fatalf("ReorderColumns() error = %v", err)
	}

	cols, err := repo.ListColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListColumns() error = %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, columnNames(cols)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	if err := repo.ReorderColumns(ctx, nil); err != nil {
		t.Errorf("ReorderColumns(nil) error = %v", err)
	}
}

func TestReorderColumns_MissingIDRollsBack(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	a := mustCreateColumn(t, repo, board.ID, "A")
	mustCreateColumn(t, repo, board.ID, "B")

	err := repo.ReorderColumns(ctx, []models.OrderUpdate{
		{ID: a.ID, Order: 99},
		{ID: "missing", Order: 1},
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("ReorderColumns() error = %v, want ErrNotFound", err)
	}

	got, err := repo.GetColumn(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetColumn() error = %v", err)
	}
	if got.Order != 1 {
		t.Errorf("order = %v, want 1 (batch must roll back)", got.Order)
	}
}

func TestRebalanceColumns(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")

	for _, tc := range []struct {
		name  string
		order float64
	}{
		{"B", 1.5},
		{"A", 1.25},
		{"C", 1.75},
	} {
		if _, err := repo.CreateColumn(ctx, board.ID, tc.name, ptr(tc.order)); err != nil {
			t.Fatalf("CreateColumn(%s) error = %v", tc.name, err)
		}
	}

	n, err := repo.RebalanceColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("RebalanceColumns() error = %v", err)
	}
	if n != 3 {
		t.Errorf("rewritten = %d, want 3", n)
	}

	cols, err := repo.ListColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListColumns() error = %v", err)
	}
	want := []float64{1, 2, 3}
	for i, col := range cols {
		if col.Order != want[i] {
			t.Errorf("%s order = %v, want %v", col.Name, col.Order, want[i])
		}
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, columnNames(cols)); diff != "" {
		t.Errorf("rebalance changed sequence (-want +got):\n%s", diff)
	}

	// Already spaced keys are left alone
	n, err = repo.RebalanceColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("second RebalanceColumns() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second rebalance rewrote %d columns, want 0", n)
	}
}
