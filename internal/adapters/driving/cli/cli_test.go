package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstListedID extracts the document ID from the first line of list
// output. Lines look like "  <id>  <title>".
func firstListedID(out string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && !strings.HasPrefix(line, "Total") {
			return fields[0]
		}
	}
	return ""
}

// execute runs the command tree with the given args and returns the
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "paperdock", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "add")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "rm")
	assert.Contains(t, names, "sync")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}

func TestVersionCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "paperdock version")
}

func TestAddCmd_RequiresArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "add")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Attention Is All You Need")
	assert.Contains(t, out, "Deep learning")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestListCmd_CategoryFilter(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "list", "--category", "Physics")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

// A flag set in one invocation must not narrow later ones: cleanup
// restores flag defaults, so a fresh setup sees the full collection.
func TestListCmd_FlagsDoNotLeakAcrossRuns(t *testing.T) {
	cleanup := setupTestServices()

	out, err := execute(t, "list", "--category", "Physics", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
	cleanup()

	cleanup = setupTestServices()
	defer cleanup()

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 2 documents")
}

func TestSearchCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "attention")

	require.NoError(t, err)
	assert.Contains(t, out, "Attention Is All You Need")
	assert.NotContains(t, out, "Deep learning")
}

func TestSearchCmd_NoMatch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "thermodynamics")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents match")
}

func TestRmCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "rm", "does-not-exist")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document with ID")
}

func TestRmCmd_RemovesDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	listed, err := execute(t, "list")
	require.NoError(t, err)

	id := firstListedID(listed)
	require.NotEmpty(t, id)

	out, err := execute(t, "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed:")

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 documents")
}

func TestSyncCmd_NoDriveClient(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "sync", "folder-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}
