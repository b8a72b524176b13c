package database

import (
	"context"
	"testing"
	"time"

	"xorm.io/builder"
)

func TestFormatTime_LexicalOrderIsChronological(t *testing.T) {
	earlier := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	later := earlier.Add(1500 * time.Microsecond)
	offset := time.FixedZone("EST", -5*3600)

	tests := []struct {
		name string
		a, b time.Time
	}{
		{"sub-second", earlier, later},
		{"different zones", earlier.In(offset), later},
		{"across years", time.Date(2023, 12, 31, 23, 59, 59, 999999000, time.UTC), earlier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := formatTime(tt.a), formatTime(tt.b)
			if len(a) != len(b) {
				t.Errorf("widths differ: %q vs %q", a, b)
			}
			if a >= b {
				t.Errorf("%q should sort before %q", a, b)
			}
		})
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	in := time.Date(2024, 6, 30, 12, 0, 0, 123456000, time.UTC)
	out, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parseTime() error = %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestExecUpdate_OnlyPatchedColumns(t *testing.T) {
	t.Parallel()
	repo, guard := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")
	col := mustCreateColumn(t, repo, board.ID, "Todo")

	err := guard.Run(ctx, func(conn Conn) error {
		n, err := execUpdate(ctx, conn, "columns", col.ID, builder.Eq{orderColumn: 42.0})
		if err != nil {
			return err
		}
		if n != 1 {
			t.Errorf("rows affected = %d, want 1", n)
		}
		n, err = execUpdate(ctx, conn, "columns", "missing", builder.Eq{"name": "x"})
		if err != nil {
			return err
		}
		if n != 0 {
			t.Errorf("rows affected for missing id = %d, want 0", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("execUpdate() error = %v", err)
	}

	got, err := repo.GetColumn(ctx, col.ID)
	if err != nil {
		t.Fatalf("GetColumn() error = %v", err)
	}
	if got.Order != 42 || got.Name != "Todo" {
		t.Errorf("column = %+v, want order 42 and name unchanged", got)
	}
}

func TestMaxOrder(t *testing.T) {
	t.Parallel()
	repo, guard := setupTestRepo(t)
	ctx := context.Background()
	board := mustCreateBoard(t, repo, "Board")

	check := func(want *float64) {
		t.Helper()
		err := guard.Run(ctx, func(conn Conn) error {
			got, err := maxOrder(ctx, conn, "columns", "board_id", board.ID)
			if err != nil {
				return err
			}
			switch {
			case want == nil && got != nil:
				t.Errorf("maxOrder() = %v, want nil", *got)
			case want != nil && (got == nil || *got != *want):
				t.Errorf("maxOrder() = %v, want %v", got, *want)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("maxOrder() error = %v", err)
		}
	}

	check(nil)
	if _, err := repo.CreateColumn(ctx, board.ID, "x", ptr(3.5)); err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	check(ptr(3.5))
}
