package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckOSReleaseDebian(t *testing.T) {
	content := []byte("PRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\nID=debian\n")

	name, err := checkOSRelease(content)
	require.NoError(t, err)
	assert.Equal(t, "Debian GNU/Linux 12 (bookworm)", name)
}

func TestCheckOSReleaseDerivative(t *testing.T) {
	content := []byte("ID=raspbian\nID_LIKE=debian\n")

	name, err := checkOSRelease(content)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestCheckOSReleaseRejectsOtherDistros(t *testing.T) {
	content := []byte("PRETTY_NAME=\"Fedora Linux 40\"\nID=fedora\n")

	_, err := checkOSRelease(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Debian")
}
