package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/stockpile/internal/core/domain"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readInventoryFile(t *testing.T, path string) map[string]int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	items := make(map[string]int)
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func TestReportCommand_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := runCommand(t, NewReportCommand(), "--file", path)
	require.ErrorIs(t, err, domain.ErrCorruptInventory)
}

func TestReportCommand_MissingFileIsFreshStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := runCommand(t, NewReportCommand(), "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory is empty.")
}

func TestAddCommand_PersistsAndPrintsActivity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := runCommand(t, NewAddCommand(), "apple", "10", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, ": Added 10 of apple")
	assert.Contains(t, out, "Current stock of apple: 10")
	assert.Equal(t, map[string]int{"apple": 10}, readInventoryFile(t, path))
}

func TestAddCommand_RejectsBadQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	out, err := runCommand(t, NewAddCommand(), "apple", "ten", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "must be a positive integer")

	// Rejected input opens no session and writes no file.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemoveCommand_DrainsItemAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 3}`), 0644))

	out, err := runCommand(t, NewRemoveCommand(), "apple", "3", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, ": Removed 3 of apple")
	assert.Contains(t, out, `"apple" is now out of stock`)
	assert.Empty(t, readInventoryFile(t, path))
}

func TestRemoveCommand_InsufficientStockKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 2}`), 0644))

	out, err := runCommand(t, NewRemoveCommand(), "apple", "5", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "has 2, need 5")
	assert.Equal(t, map[string]int{"apple": 2}, readInventoryFile(t, path))
}

func TestGetCommand_AbsentItemIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 7}`), 0644))

	out, err := runCommand(t, NewGetCommand(), "ghost", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ghost: 0")
}

func TestLowCommand_ExplicitThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 7, "grape": 3}`), 0644))

	out, err := runCommand(t, NewLowCommand(), "--file", path, "--threshold", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Low stock (threshold 5): grape")
	assert.NotContains(t, out, "apple")
}
