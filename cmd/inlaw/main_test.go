package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inlaw/internal/assistant"
	"inlaw/internal/store"
)

// execute runs the root command with args and returns its output. The
// command tree uses package-level flags, so these tests do not run in
// parallel.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	verbose, configPath, storeDriver, storePath = false, "", "", ""
	askRaw, signOutYes = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func seedFileStore(t *testing.T, pairs ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	fs, err := store.NewFileStore(path)
	require.NoError(t, err)
	for i := 0; i+1 < len(pairs); i += 2 {
		require.NoError(t, fs.Set(pairs[i], pairs[i+1]))
	}
	require.NoError(t, fs.Close())
	return path
}

func TestAsk_PrintsReply(t *testing.T) {
	question := "What is the limitation period for a contract claim?"
	out, err := execute(t, "", "--store", "memory", "ask", "--raw", question)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimRight(assistant.GenerateReply(question), "\n")+"\n", out)
}

func TestAsk_RejectsBlank(t *testing.T) {
	_, err := execute(t, "", "--store", "memory", "ask", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to send")
}

func TestStatus(t *testing.T) {
	path := seedFileStore(t,
		store.KeyLoggedIn, "true",
		store.KeyUserEmail, "jane@firm.co.ke",
		store.KeyUserPlan, "Pro Plan",
	)
	out, err := execute(t, "", "--store", "file", "--store-path", path, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in as jane@firm.co.ke")
	assert.Contains(t, out, "Pro")
	assert.Contains(t, out, store.KeyUserEmail)
}

func TestStatus_SignedOut(t *testing.T) {
	out, err := execute(t, "", "--store", "memory", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "signed out")
	assert.Contains(t, out, "(no stored keys)")
}

func TestSignOut(t *testing.T) {
	pairs := []string{store.KeyLoggedIn, "true", store.KeyUserEmail, "jane@firm.co.ke", store.KeyTheme, "dark"}

	t.Run("cancelled", func(t *testing.T) {
		path := seedFileStore(t, pairs...)
		out, err := execute(t, "n\n", "--store", "file", "--store-path", path, "signout")
		require.NoError(t, err)
		assert.Contains(t, out, "Cancelled.")

		fs, err := store.NewFileStore(path)
		require.NoError(t, err)
		defer fs.Close()
		v, ok, err := fs.Get(store.KeyUserEmail)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "jane@firm.co.ke", v)
	})

	t.Run("confirmed", func(t *testing.T) {
		path := seedFileStore(t, pairs...)
		out, err := execute(t, "", "--store", "file", "--store-path", path, "signout", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Signed out.")

		fs, err := store.NewFileStore(path)
		require.NoError(t, err)
		defer fs.Close()
		keys, err := fs.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	verbose, storeDriver, storePath = false, "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: file")
	assert.Contains(t, out.String(), path)
}

func TestInvalidDriver(t *testing.T) {
	_, err := execute(t, "", "--store", "postgres", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
