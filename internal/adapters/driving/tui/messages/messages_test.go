package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTypeString(t *testing.T) {
	assert.Equal(t, "menu", ViewMenu.String())
	assert.Equal(t, "chat", ViewChat.String())
	assert.Equal(t, "documents", ViewDocuments.String())
	assert.Equal(t, "search", ViewSearch.String())
	assert.Equal(t, "help", ViewHelp.String())
	assert.Equal(t, "unknown", ViewType(42).String())
}
