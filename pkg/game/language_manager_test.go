package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"ca", LanguageCatalan, false},
		{"es-ES", LanguageSpanish, false},
		{"en_US.UTF-8", LanguageEnglish, false},
		{"ca_ES@valencia", LanguageCatalan, false},
		{" EN ", LanguageEnglish, false},
		{"fr", "", true},
		{"", "", true},
		{"not a tag!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, LanguageCatalan, MatchLanguage())
	assert.Equal(t, LanguageCatalan, MatchLanguage("", "C.UTF-8", "POSIX"))
	assert.Equal(t, LanguageEnglish, MatchLanguage("en_GB.UTF-8"))
	assert.Equal(t, LanguageSpanish, MatchLanguage("es_MX.UTF-8"))
	assert.Equal(t, LanguageSpanish, MatchLanguage("es:en"))
}

func TestLanguage_Next(t *testing.T) {
	assert.Equal(t, LanguageSpanish, LanguageCatalan.Next())
	assert.Equal(t, LanguageEnglish, LanguageSpanish.Next())
	assert.Equal(t, LanguageCatalan, LanguageEnglish.Next())
	assert.Equal(t, LanguageCatalan, Language("xx").Next())
}

func newTestLanguageManager(t *testing.T, storage PreferenceStorage) *LanguageManager {
	t.Helper()
	lm, err := NewLanguageManager(LanguageManagerConfig{Storage: storage, Catalog: loadCatalog(t)})
	require.NoError(t, err)
	return lm
}

func TestLanguageManager_DefaultAndStrings(t *testing.T) {
	lm := newTestLanguageManager(t, NewMemoryStorage())

	assert.Equal(t, LanguageCatalan, lm.Language())
	assert.Equal(t, "Enginyer Software", lm.Strings().Hero.Subtitle)
}

func TestLanguageManager_SetLanguage(t *testing.T) {
	storage := NewMemoryStorage()
	lm := newTestLanguageManager(t, storage)

	var seen []Language
	lm.Subscribe(func(l Language) { seen = append(seen, l) })

	require.NoError(t, lm.SetLanguage(LanguageEnglish))
	assert.Equal(t, "Software Engineer", lm.Strings().Hero.Subtitle)

	err := lm.SetLanguage("de")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, LanguageEnglish, lm.Language())

	stored, _, _ := storage.Load(LanguagePreferenceKey)
	assert.Equal(t, "en", stored)
	assert.Equal(t, []Language{LanguageEnglish}, seen)

	// a new manager over the same storage restores the choice
	again := newTestLanguageManager(t, storage)
	assert.Equal(t, LanguageEnglish, again.Language())
}

func TestLanguageManager_Cycle(t *testing.T) {
	lm := newTestLanguageManager(t, NewMemoryStorage())

	assert.Equal(t, LanguageSpanish, lm.Cycle())
	assert.Equal(t, LanguageEnglish, lm.Cycle())
	assert.Equal(t, LanguageCatalan, lm.Cycle())
}

func TestNewLanguageManager_RequiresCatalog(t *testing.T) {
	_, err := NewLanguageManager(LanguageManagerConfig{})
	assert.Error(t, err)
}
