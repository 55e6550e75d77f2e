package pydeps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llb/internal/execx"
	"llb/internal/logger"
)

func writeManifest(t *testing.T) string {
	t.Helper()
	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("flask\npyyaml\n"), 0o644))
	return manifest
}

func TestInstallMissingManifest(t *testing.T) {
	fake := &execx.Fake{}
	i := NewInstaller(filepath.Join(t.TempDir(), "requirements.txt"), fake, logger.NewMockLogger())

	err := i.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest not found")
	assert.Empty(t, fake.Calls())
}

func TestInstallPrimarySucceeds(t *testing.T) {
	manifest := writeManifest(t)
	fake := &execx.Fake{}
	i := NewInstaller(manifest, fake, logger.NewMockLogger())

	err := i.Install(context.Background())
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "pip3 install -r "+manifest, lines[0])
}

func TestInstallFallbackAttemptedExactlyOnce(t *testing.T) {
	manifest := writeManifest(t)
	fake := &execx.Fake{
		RunFunc: func(call execx.Call) error {
			if call.Args[len(call.Args)-1] == "--break-system-packages" {
				return nil
			}
			return errors.New("externally-managed-environment")
		},
	}
	log := logger.NewMockLogger()
	i := NewInstaller(manifest, fake, log)

	err := i.Install(context.Background())
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "pip3 install -r "+manifest, lines[0])
	assert.Equal(t, "pip3 install -r "+manifest+" --break-system-packages", lines[1])
	assert.True(t, log.Contains("retrying"))
}

func TestInstallBothModesFailing(t *testing.T) {
	manifest := writeManifest(t)
	fake := &execx.Fake{
		RunFunc: func(call execx.Call) error {
			return errors.New("resolver error")
		},
	}
	i := NewInstaller(manifest, fake, logger.NewMockLogger())

	err := i.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both modes")

	// One fallback attempt, never more.
	assert.Len(t, fake.Calls(), 2)
}
