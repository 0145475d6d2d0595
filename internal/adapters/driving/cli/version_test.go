package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	setupTestServices(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { version = "dev" })

	stdout, _, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "polaris version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	SetVersion("")
	assert.Equal(t, "dev", version)
}
