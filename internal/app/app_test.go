package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "kanban.db"), filepath.Join(dir, "backups")
}

func openApp(t *testing.T, dbPath, backupDir string, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	a, err := Open(context.Background(), dbPath, backupDir, opts...)
	require.NoError(t, err)
	return a
}

func backupNames(t *testing.T, a *App) []string {
	t.Helper()
	backups, err := a.ListBackups()
	require.NoError(t, err)
	names := make([]string, len(backups))
	for i, b := range backups {
		names[i] = b.Filename
	}
	return names
}

func TestOpen_FreshStoreSkipsStartupSnapshot(t *testing.T) {
	dbPath, backupDir := paths(t)

	a := openApp(t, dbPath, backupDir)
	defer a.Close()

	assert.FileExists(t, dbPath)
	assert.Empty(t, backupNames(t, a))
	assert.NotNil(t, a.Commands)
	assert.NotNil(t, a.Registry)
	assert.NotNil(t, a.Repo())
}

func TestOpen_SnapshotsExistingStore(t *testing.T) {
	dbPath, backupDir := paths(t)

	a := openApp(t, dbPath, backupDir)
	_, err := a.Commands.CreateBoard(context.Background(), commands.CreateBoardInput{Name: "Keep me"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a = openApp(t, dbPath, backupDir)
	defer a.Close()

	names := backupNames(t, a)
	require.Len(t, names, 1)
	assert.True(t, strings.HasPrefix(names[0], "kanban_startup_"), names[0])

	boards, err := a.Commands.ListBoards(context.Background())
	require.NoError(t, err)
	assert.Len(t, boards, 1)
}

func TestOpen_StartupRetention(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	require.NoError(t, a.Close())

	// Ten old snapshots from different days
	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("kanban_backup_202001%02d_120000.db", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("old"), 0o644))
	}

	a = openApp(t, dbPath, backupDir, WithKeepOnStartup(7))
	defer a.Close()

	names := backupNames(t, a)
	require.Len(t, names, 7)
	assert.True(t, strings.HasPrefix(names[0], "kanban_startup_"), "the new snapshot is the newest")
	assert.Equal(t, "kanban_backup_20200110_120000.db", names[1])
}

func TestOpen_StartupSnapshotDisabled(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	require.NoError(t, a.Close())

	a = openApp(t, dbPath, backupDir, WithStartupSnapshot(false))
	defer a.Close()
	assert.Empty(t, backupNames(t, a))
}

func TestOpen_BackupFailureIsNotFatal(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	require.NoError(t, a.Close())

	// A file where the backup directory should be
	require.NoError(t, os.WriteFile(backupDir, []byte("in the way"), 0o644))

	var logs bytes.Buffer
	a, err := Open(context.Background(), dbPath, backupDir,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	defer a.Close()

	assert.Contains(t, logs.String(), "Startup backup failed")
}

func TestOpen_MigrationFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	// Not a database
	dbPath := filepath.Join(dir, "kanban.db")
	require.NoError(t, os.WriteFile(dbPath, bytes.Repeat([]byte("garbage!"), 1024), 0o644))

	_, err := Open(context.Background(), dbPath, filepath.Join(dir, "backups"),
		WithLogger(quietLogger()), WithStartupSnapshot(false))
	assert.Error(t, err)
}

func TestCreateBackup(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	defer a.Close()
	ctx := context.Background()

	_, err := a.Commands.CreateBoard(ctx, commands.CreateBoardInput{Name: "Snapshot me"})
	require.NoError(t, err)

	first, err := a.CreateBackup(ctx)
	require.NoError(t, err)
	info, err := os.Stat(first)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "kanban_backup_"))

	// Wait for the next second so the timestamp part differs
	time.Sleep(time.Until(time.Now().Truncate(time.Second).Add(time.Second)))
	second, err := a.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Greater(t, filepath.Base(second), filepath.Base(first))

	removed, err := a.CleanupOldBackups(1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{filepath.Base(second)}, backupNames(t, a))
}

func TestCheckIntegrityAndMigrations(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	defer a.Close()
	ctx := context.Background()

	ok, err := a.CheckIntegrity(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	migrations, err := a.AppliedMigrations(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, "001_initial_schema", migrations[0].Name)
}

func TestOpenConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	a, err := OpenConfig(context.Background(), cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer a.Close()

	assert.FileExists(t, cfg.DBPath())
}

func TestRegistry_ProjectWorkflow(t *testing.T) {
	dbPath, backupDir := paths(t)
	a := openApp(t, dbPath, backupDir)
	defer a.Close()
	ctx := context.Background()

	call := func(name string, input any) commands.Response {
		t.Helper()
		raw, err := json.Marshal(input)
		require.NoError(t, err)
		resp := a.Registry.Dispatch(ctx, name, raw)
		require.True(t, resp.OK, "%s: %s", name, resp.Error)
		return resp
	}

	board := call("createBoard", map[string]any{"name": "My Project"}).Data.(*models.Board)
	todo := call("createColumn", map[string]any{"boardId": board.ID, "name": "To Do"}).Data.(*models.Column)
	doing := call("createColumn", map[string]any{"boardId": board.ID, "name": "In Progress"}).Data.(*models.Column)
	first := call("createCard", map[string]any{"columnId": todo.ID, "title": "One"}).Data.(*models.Card)
	call("createCard", map[string]any{"columnId": todo.ID, "title": "Two"})

	call("moveCard", map[string]any{"id": first.ID, "columnId": doing.ID, "order": 1})

	assert.Len(t, call("listCardsForColumn", map[string]any{"columnId": todo.ID}).Data, 1)
	assert.Len(t, call("listCardsForColumn", map[string]any{"columnId": doing.ID}).Data, 1)

	call("deleteBoard", map[string]any{"id": board.ID})
	assert.Empty(t, call("listColumns", map[string]any{"boardId": board.ID}).Data)
	assert.Empty(t, call("listCardsForBoard", map[string]any{"boardId": board.ID}).Data)

	path := call("createBackup", nil).Data.(string)
	assert.FileExists(t, path)
	assert.Equal(t, true, call("checkIntegrity", nil).Data)
}
