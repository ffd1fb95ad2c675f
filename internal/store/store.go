// Package store implements the persistent key/value contract the
// orchestrator depends on.
//
// All values are strings. Multi-key writes are not atomic and callers must
// not assume they are.
package store

import (
	"errors"
	"fmt"
	"sort"
)

// Keys written by the application.
const (
	KeyLoggedIn      = "isLoggedIn"
	KeyUserName      = "userName"
	KeyUserEmail     = "userEmail"
	KeyUserFirm      = "userFirm"
	KeyUserPractice  = "userPractice"
	KeyUserPlan      = "userPlan"
	KeyNotifications = "notifications"
	KeyCitations     = "citations"
	KeyAutoSave      = "autoSave"
	KeyLanguage      = "language"
	KeyDateFormat    = "dateFormat"
	KeyTheme         = "theme"
	KeyRememberMe    = "rememberMe"
)

// AllKeys lists every key in declaration order.
var AllKeys = []string{
	KeyLoggedIn, KeyUserName, KeyUserEmail, KeyUserFirm, KeyUserPractice,
	KeyUserPlan, KeyNotifications, KeyCitations, KeyAutoSave, KeyLanguage,
	KeyDateFormat, KeyTheme, KeyRememberMe,
}

// ErrUnavailable wraps any failure to reach the backing medium.
var ErrUnavailable = errors.New("persistent store unavailable")

// KV is the contract the orchestrator uses.
type KV interface {
	// Get returns the value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Clear removes every key.
	Clear() error
}

// Store is a KV with a lifecycle.
type Store interface {
	KV
	Keys() ([]string, error)
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory  = "memory"
	DriverFile    = "file"
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
)

// Open constructs the store for driver. path is ignored by the memory driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		return NewFileStore(path)
	case DriverSQLite, DriverSQLite3:
		return NewSQLStore(driver, path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// FormatBool serializes b as the literal "true" or "false".
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetBool reads a boolean key. An absent key yields def. Keys defaulting
// to true are true unless the stored value is exactly "false"; keys
// defaulting to false are false unless it is exactly "true".
func GetBool(kv KV, key string, def bool) (bool, error) {
	v, ok, err := kv.Get(key)
	if err != nil || !ok {
		return def, err
	}
	if def {
		return v != "false", nil
	}
	return v == "true", nil
}

// GetString reads key, returning def when it is absent or empty.
func GetString(kv KV, key, def string) (string, error) {
	v, ok, err := kv.Get(key)
	if err != nil || !ok || v == "" {
		return def, err
	}
	return v, nil
}

// Dump returns every stored pair.
func Dump(s Store) (map[string]string, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := s.Get(k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
