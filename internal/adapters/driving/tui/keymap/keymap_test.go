package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("I", km.Rebuild))

	assert.False(t, Matches("i", km.Rebuild))
	assert.False(t, Matches("x", km.Quit))
}

func TestHelpGroupsAreNonEmpty(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.NotEmpty(t, km.ResultsHelp())
	assert.NotEmpty(t, km.DocumentsHelp())
	for _, group := range km.FullHelp() {
		assert.NotEmpty(t, group)
	}
}
