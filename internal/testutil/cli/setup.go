package cli

import (
	"testing"

	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/testutil"
)

// SetupCLITest opens a fresh store for CLI tests.
// This helper lives in its own package so that packages imported by
// internal/cli can keep using testutil without an import cycle.
func SetupCLITest(t *testing.T) *app.App {
	t.Helper()
	return testutil.SetupTestApp(t)
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	return testutil.ParseJSON(t, output)
}

// Data returns the "data" object of a successful JSON response
func Data(t *testing.T, output string) map[string]any {
	t.Helper()
	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success response, got: %s", output)
	}
	data, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected object data, got: %s", output)
	}
	return data
}
