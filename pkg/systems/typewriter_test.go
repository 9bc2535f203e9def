package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypewriter_Cycle(t *testing.T) {
	tw := NewTypewriter([]string{"ab", "xyz"}, 2, 1, 3, 0.5)

	steps := []string{"", "a", "a", "ab"}
	for i, want := range steps {
		tw.Update(0)
		assert.Equal(t, want, tw.Text(), "tick %d", i+1)
	}

	// hold
	tw.Update(0)
	tw.Update(0)
	assert.Equal(t, "ab", tw.Text())
	tw.Update(0)
	assert.Equal(t, "ab", tw.Text())

	// delete one rune per tick
	tw.Update(0)
	assert.Equal(t, "a", tw.Text())
	tw.Update(0)
	assert.Equal(t, "", tw.Text())
	assert.Equal(t, 1, tw.PhraseIndex())

	tw.Update(0)
	tw.Update(0)
	assert.Equal(t, "x", tw.Text())
}

func TestTypewriter_WrapsAroundPhrases(t *testing.T) {
	tw := NewTypewriter([]string{"a", "b"}, 1, 1, 0, 0.5)
	seen := map[int]bool{}
	for i := 0; i < 20; i++ {
		tw.Update(0)
		seen[tw.PhraseIndex()] = true
	}
	assert.True(t, seen[0])
	assert.True(t, seen[1])
}

func TestTypewriter_MultibyteRunes(t *testing.T) {
	tw := NewTypewriter([]string{"Ñà"}, 1, 1, 10, 0.5)
	tw.Update(0)
	assert.Equal(t, "Ñ", tw.Text())
	tw.Update(0)
	assert.Equal(t, "Ñà", tw.Text())
}

func TestTypewriter_CursorBlink(t *testing.T) {
	tw := NewTypewriter([]string{"abc"}, 1, 1, 1, 0.5)
	assert.True(t, tw.CursorVisible())

	tw.Update(0.25)
	assert.True(t, tw.CursorVisible())
	tw.Update(0.25)
	assert.False(t, tw.CursorVisible())
	tw.Update(0.5)
	assert.True(t, tw.CursorVisible())
}

func TestTypewriter_SetPhrasesRestarts(t *testing.T) {
	tw := NewTypewriter([]string{"hello"}, 1, 1, 1, 0.5)
	tw.Update(0)
	tw.Update(0)
	assert.Equal(t, "he", tw.Text())

	tw.SetPhrases([]string{"", "hola"})
	assert.Equal(t, "", tw.Text())
	assert.Equal(t, 0, tw.PhraseIndex())
	tw.Update(0)
	assert.Equal(t, "h", tw.Text())
}

func TestTypewriter_Empty(t *testing.T) {
	tw := NewTypewriter(nil, 0, 0, 0, 0)
	tw.Update(1.0 / 60)
	assert.Equal(t, "", tw.Text())
}
