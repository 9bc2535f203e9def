package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingStorage simulates an unavailable key-value store.
type failingStorage struct {
	saves int
}

var errStorageDown = errors.New("storage unavailable")

func (f *failingStorage) Load(string) (string, bool, error) { return "", false, errStorageDown }
func (f *failingStorage) Save(string, string) error {
	f.saves++
	return errStorageDown
}

func validColor(s string) bool { return s == "red" || s == "blue" }

func TestPreference_DefaultWhenAbsent(t *testing.T) {
	p := NewPreference("color", "red", validColor, NewMemoryStorage(), nil)
	assert.Equal(t, "red", p.Get())
	assert.Equal(t, "color", p.Key())
}

func TestPreference_RestoresStoredValue(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("color", "blue"))

	p := NewPreference("color", "red", validColor, storage, nil)
	assert.Equal(t, "blue", p.Get())
}

func TestPreference_IgnoresInvalidStoredValue(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("color", "green"))

	core, logs := observer.New(zap.WarnLevel)
	p := NewPreference("color", "red", validColor, storage, zap.New(core))

	assert.Equal(t, "red", p.Get())
	assert.Equal(t, 1, logs.Len())
}

func TestPreference_SetPersistsAndNotifies(t *testing.T) {
	storage := NewMemoryStorage()
	p := NewPreference("color", "red", validColor, storage, nil)

	var seen []string
	p.Subscribe(func(v string) { seen = append(seen, v) })

	require.NoError(t, p.Set("blue"))
	require.NoError(t, p.Set("blue"))

	stored, ok, err := storage.Load("color")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "blue", stored)
	assert.Equal(t, []string{"blue"}, seen, "unchanged value does not notify")
}

func TestPreference_RejectsInvalid(t *testing.T) {
	p := NewPreference("color", "red", validColor, NewMemoryStorage(), nil)

	err := p.Set("green")
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, "red", p.Get())
}

func TestPreference_StorageFailuresAreSwallowed(t *testing.T) {
	storage := &failingStorage{}
	core, logs := observer.New(zap.WarnLevel)

	p := NewPreference("color", "red", validColor, storage, zap.New(core))
	assert.Equal(t, "red", p.Get(), "load failure falls back to default")

	require.NoError(t, p.Set("blue"))
	assert.Equal(t, "blue", p.Get(), "value stays in memory")
	assert.Equal(t, 1, storage.saves)
	assert.Equal(t, 2, logs.Len())
}

func TestPreference_NilStorage(t *testing.T) {
	p := NewPreference("color", "red", validColor, nil, nil)
	require.NoError(t, p.Set("blue"))
	assert.Equal(t, "blue", p.Get())
}

// isolateHome points gdata at a temporary directory.
func isolateHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func TestGdataStorage_RoundTrip(t *testing.T) {
	isolateHome(t)

	storage, err := NewGdataStorage("portfolio_test")
	require.NoError(t, err)

	_, ok, err := storage.Load(ThemePreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Save(ThemePreferenceKey, "dark"))
	require.NoError(t, storage.Save(LanguagePreferenceKey, "es"))

	// a fresh manager reads what the first one wrote
	reopened, err := NewGdataStorage("portfolio_test")
	require.NoError(t, err)

	theme, ok, err := reopened.Load(ThemePreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)

	lang, _, err := reopened.Load(LanguagePreferenceKey)
	require.NoError(t, err)
	assert.Equal(t, "es", lang)
}

func TestOpenPreferenceStorage(t *testing.T) {
	isolateHome(t)

	s := OpenPreferenceStorage("portfolio_test", zap.NewNop())
	_, isGdata := s.(*GdataStorage)
	assert.True(t, isGdata)
}
