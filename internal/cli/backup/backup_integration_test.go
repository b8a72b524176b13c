package backup

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corkcli "github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/testutil"
	"github.com/thenoetrevino/corkboard/internal/testutil/cli"
)

var backupName = regexp.MustCompile(`^kanban_backup_\d{8}_\d{6}(_\d{3})?\.db$`)

func TestBackupLifecycle_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)
	testutil.CreateTestBoard(t, app, "Worth Saving")

	var created []string
	for range 3 {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--quiet"})
		require.NoError(t, err)

		path := strings.TrimSpace(output)
		assert.Regexp(t, backupName, filepath.Base(path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		created = append(created, path)
	}

	t.Run("list is newest first", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{created[2], created[1], created[0]}, strings.Fields(output))
	})

	t.Run("list human-readable shows sizes", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, filepath.Base(created[0]))
		assert.Contains(t, output, "3 backups")
		assert.Contains(t, output, "kB")
	})

	t.Run("cleanup keeps the newest", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CleanupCmd(), []string{"--keep", "1", "--json"})
		require.NoError(t, err)
		assert.Equal(t, 2.0, cli.Data(t, output)["removed"])

		output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{created[2]}, strings.Fields(output))
	})

	t.Run("negative keep is rejected", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CleanupCmd(), []string{"--keep", "-1", "--json"})
		require.Error(t, err)
		assert.Equal(t, corkcli.ExitValidation, corkcli.ExitCode(err))
	})
}

func TestBackupList_Empty(t *testing.T) {
	app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No backups found")
}

func TestBackupCheck_Integration(t *testing.T) {
	app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, CheckCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Integrity check passed")

	output, err = cli.ExecuteCLICommand(t, app, CheckCmd(), []string{"--json"})
	require.NoError(t, err)
	assert.Equal(t, true, cli.Data(t, output)["ok"])
}
