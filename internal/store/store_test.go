package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// openers builds one store per backend for the contract tests.
func openers(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		DriverMemory: func(t *testing.T) Store { return NewMemoryStore() },
		DriverFile: func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
			require.NoError(t, err)
			return s
		},
		DriverSQLite: func(t *testing.T) Store {
			s, err := NewSQLStore(DriverSQLite, filepath.Join(t.TempDir(), "storage.db"))
			require.NoError(t, err)
			return s
		},
		DriverSQLite3: func(t *testing.T) Store {
			s, err := NewSQLStore(DriverSQLite3, filepath.Join(t.TempDir(), "storage.db"))
			if err != nil && strings.Contains(err.Error(), "CGO_ENABLED") {
				t.Skip("mattn/go-sqlite3 requires cgo")
			}
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, open := range openers(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, ok, err := s.Get(KeyUserName)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store has no keys")

			require.NoError(t, s.Set(KeyUserName, "Jane Doe"))
			require.NoError(t, s.Set(KeyLoggedIn, "true"))
			require.NoError(t, s.Set(KeyUserName, "Jane"))

			v, ok, err := s.Get(KeyUserName)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "Jane", v)

			keys, err := s.Keys()
			require.NoError(t, err)
			sort.Strings(keys)
			assert.Equal(t, []string{KeyLoggedIn, KeyUserName}, keys)

			require.NoError(t, s.Set(KeyUserFirm, ""))
			v, ok, err = s.Get(KeyUserFirm)
			require.NoError(t, err)
			assert.True(t, ok, "empty string is still present")
			assert.Empty(t, v)

			require.NoError(t, s.Clear())
			for _, k := range AllKeys {
				_, ok, err := s.Get(k)
				require.NoError(t, err)
				assert.False(t, ok, "key %s survived Clear", k)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	on, err := GetBool(s, KeyNotifications, true)
	require.NoError(t, err)
	assert.True(t, on, "absent default-true flag")

	in, err := GetBool(s, KeyLoggedIn, false)
	require.NoError(t, err)
	assert.False(t, in, "absent default-false flag")

	tests := []struct {
		stored string
		def    bool
		want   bool
	}{
		{"false", true, false},
		{"true", true, true},
		{"yes", true, true},
		{"true", false, true},
		{"TRUE", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		require.NoError(t, s.Set("flag", tt.stored))
		got, err := GetBool(s, "flag", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "stored %q default %v", tt.stored, tt.def)
	}

	assert.Equal(t, "true", FormatBool(true))
	assert.Equal(t, "false", FormatBool(false))
}

func TestGetString(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	v, err := GetString(s, KeyLanguage, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", v)

	require.NoError(t, s.Set(KeyLanguage, "sw"))
	v, err = GetString(s, KeyLanguage, "en")
	require.NoError(t, err)
	assert.Equal(t, "sw", v)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	s, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open("redis", "")
	assert.Error(t, err)

	dir := t.TempDir()
	fs, err := Open(DriverFile, filepath.Join(dir, "nested", "storage.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Set(KeyTheme, "dark"))
	require.NoError(t, fs.Close())

	dump, err := Dump(fs)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyTheme: "dark"}, dump)
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	a, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, a.Set(KeyUserPlan, "Pro Plan"))

	b, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := b.Get(KeyUserPlan)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Pro Plan", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStore_WatchReportsExternalWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "storage.json")
	local, err := NewFileStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := local.Watch(ctx)
	require.NoError(t, err)

	_, err = local.Watch(ctx)
	assert.Error(t, err, "second watch is rejected")

	other, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, other.Set(KeyLoggedIn, "true"))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for external write")
	}

	v, ok, err := local.Get(KeyLoggedIn)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, local.Close())
	_, open := <-changes
	assert.False(t, open, "channel closes with the store")
}

func TestFileStore_WatchStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	local, err := NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := local.Watch(ctx)
	require.NoError(t, err)

	cancel()
	for range changes {
	}
	require.NoError(t, local.Close())
}

func TestSQLStore_InMemory(t *testing.T) {
	t.Parallel()

	s, err := NewSQLStore(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(KeyRememberMe, "true"))
	v, ok, err := s.Get(KeyRememberMe)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestSQLStore_ClosedIsUnavailable(t *testing.T) {
	t.Parallel()

	s, err := NewSQLStore(DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(KeyTheme, "dark")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
