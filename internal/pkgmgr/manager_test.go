package pkgmgr

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llb/internal/execx"
	"llb/internal/logger"
)

func installedOutput(packages ...string) []byte {
	return []byte(strings.Join(packages, "\n") + "\n")
}

func TestEnsureBaseAllPresent(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			return installedOutput(BasePackages...), nil
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "dpkg-query")
}

func TestEnsureBaseInstallsOnlyMissing(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			return installedOutput("git", "curl", "ca-certificates"), nil
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "apt-get update", lines[1])
	assert.Equal(t, "apt-get install -y python3 python3-pip python3-venv", lines[2])
}

func TestEnsureBaseArchQualifiedPackages(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			qualified := make([]string, 0, len(BasePackages))
			for _, pkg := range BasePackages {
				qualified = append(qualified, pkg+":arm64")
			}
			return installedOutput(qualified...), nil
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.NoError(t, err)
	require.Len(t, fake.Calls(), 1)
}

func TestEnsureBaseQueryFailure(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			return nil, errors.New("dpkg database locked")
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing packages")
}

func TestEnsureBaseInstallFailureAborts(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			return installedOutput("git"), nil
		},
		RunFunc: func(call execx.Call) error {
			if len(call.Args) > 0 && call.Args[0] == "install" {
				return errors.New("no network")
			}
			return nil
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install base packages")
}

func TestEnsureBaseIndexFailureAborts(t *testing.T) {
	fake := &execx.Fake{
		OutputFunc: func(call execx.Call) ([]byte, error) {
			return installedOutput("git"), nil
		},
		RunFunc: func(call execx.Call) error {
			return errors.New("no privilege")
		},
	}
	m := NewManager(fake, logger.NewMockLogger())

	err := m.EnsureBase(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get update failed")

	// The failed index refresh must prevent the install attempt.
	lines := fake.CommandLines()
	require.Len(t, lines, 2)
}
