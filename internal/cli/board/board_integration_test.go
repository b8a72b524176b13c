package board

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corkcli "github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/testutil"
	"github.com/thenoetrevino/corkboard/internal/testutil/cli"
)

func TestCreateBoard_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)

	tests := []struct {
		name         string
		flags        []string
		verifyOutput func(t *testing.T, output string)
	}{
		{
			name:  "human-readable output",
			flags: []string{"--name", "My Project"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Board 'My Project' created successfully")
			},
		},
		{
			name:  "JSON output",
			flags: []string{"--name", "Agent Board", "--json"},
			verifyOutput: func(t *testing.T, output string) {
				data := cli.Data(t, output)
				assert.Equal(t, "Agent Board", data["name"])
				assert.NotEmpty(t, data["id"])
				assert.Equal(t, data["createdAt"], data["lastOpenedAt"])
			},
		},
		{
			name:  "quiet output",
			flags: []string{"--name", "Scripted", "--quiet"},
			verifyOutput: func(t *testing.T, output string) {
				_, err := uuid.Parse(strings.TrimSpace(output))
				assert.NoError(t, err, "quiet mode prints only the ID")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), tt.flags)
			require.NoError(t, err)
			tt.verifyOutput(t, output)
		})
	}

	boards, err := app.Repo().ListBoards(context.Background())
	require.NoError(t, err)
	assert.Len(t, boards, 3)
}

func TestCreateBoard_Invalid(t *testing.T) {
	app := cli.SetupCLITest(t)

	t.Run("missing --name flag", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--quiet"})
		assert.Error(t, err)
	})

	t.Run("blank name", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--name", "   ", "--json"})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitValidation, corkcli.ExitCode(err))

		result := cli.ParseJSON(t, output)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "VALIDATION_ERROR", result["error"].(map[string]any)["code"])
	})
}

func TestListBoards_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)

	t.Run("empty", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "No boards found")
	})

	first := testutil.CreateTestBoard(t, app, "First")
	second := testutil.CreateTestBoard(t, app, "Second")

	t.Run("most recently opened first", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, OpenCmd(), []string{first, "--quiet"})
		require.NoError(t, err)

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{first, second}, strings.Fields(output))
	})

	t.Run("human-readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "First")
		assert.Contains(t, output, "Second")
	})
}

func TestShowBoard_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)

	boardID := testutil.CreateTestBoard(t, app, "My Project")
	todo := testutil.CreateTestColumn(t, app, boardID, "To Do")
	testutil.CreateTestColumn(t, app, boardID, "Done")
	testutil.CreateTestCard(t, app, todo, "Write docs")
	testutil.CreateTestCard(t, app, todo, "Ship it")

	t.Run("JSON includes columns and cards", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{boardID, "--json"})
		require.NoError(t, err)

		data := cli.Data(t, output)
		assert.Equal(t, "My Project", data["board"].(map[string]any)["name"])
		assert.Len(t, data["columns"], 2)
		assert.Len(t, data["cards"], 2)
	})

	t.Run("human-readable groups cards by column", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", boardID})
		require.NoError(t, err)
		assert.Contains(t, output, "To Do (2)")
		assert.Contains(t, output, "Done (0)")
		assert.Less(t, strings.Index(output, "Write docs"), strings.Index(output, "Ship it"))
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{uuid.NewString(), "--json"})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitNotFound, corkcli.ExitCode(err))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--json"})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitUsage, corkcli.ExitCode(err))
	})
}

func TestUpdateBoard_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)
	boardID := testutil.CreateTestBoard(t, app, "Old Name")

	output, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{boardID, "--name", "New Name", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", cli.Data(t, output)["name"])

	t.Run("nothing to update", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{boardID})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitUsage, corkcli.ExitCode(err))
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{uuid.NewString(), "--name", "x", "--quiet"})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitNotFound, corkcli.ExitCode(err))
	})
}

func TestDeleteBoard_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)
	ctx := context.Background()

	boardID := testutil.CreateTestBoard(t, app, "Doomed")
	columnID := testutil.CreateTestColumn(t, app, boardID, "To Do")
	cardID := testutil.CreateTestCard(t, app, columnID, "Task")

	output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{boardID})
	require.NoError(t, err)
	assert.Contains(t, output, "deleted")

	board, err := app.Repo().GetBoard(ctx, boardID)
	require.NoError(t, err)
	assert.Nil(t, board)

	card, err := app.Repo().GetCard(ctx, cardID)
	require.NoError(t, err)
	assert.Nil(t, card, "cards are removed with their board")

	t.Run("deleting again succeeds", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{boardID, "--quiet"})
		assert.NoError(t, err)
	})
}
