// Package pkgmgr wraps Debian package management for the bootstrap.
package pkgmgr

import (
	"context"
	"strings"

	apperrors "llb/internal/errors"
	"llb/internal/execx"
	"llb/internal/logger"
)

// BasePackages defines the baseline software the setup service needs on the host.
var BasePackages = []string{
	"git",
	"python3",
	"python3-pip",
	"python3-venv",
	"curl",
	"ca-certificates",
}

// Manager orchestrates package installation via apt/dpkg.
type Manager struct {
	runner execx.Runner
	log    logger.Logger
}

// NewManager constructs a Manager with the provided runner (defaults to execx.System).
func NewManager(runner execx.Runner, log logger.Logger) *Manager {
	if runner == nil {
		runner = execx.System{}
	}
	return &Manager{runner: runner, log: log}
}

// EnsureBase refreshes the package index and installs any missing base
// packages. A second run on the same machine installs nothing.
func (m *Manager) EnsureBase(ctx context.Context) error {
	missing, err := m.missingPackages(ctx)
	if err != nil {
		return pkgError("pkgmgr.missingPackages", "failed to determine missing packages", err, nil)
	}

	if len(missing) == 0 {
		m.log.Debug("all base packages already installed")
		return nil
	}

	if err := m.runner.Run(ctx, "apt-get", "update"); err != nil {
		return pkgError("pkgmgr.updateIndex", "apt-get update failed", err, nil)
	}

	args := append([]string{"install", "-y"}, missing...)
	if err := m.runner.Run(ctx, "apt-get", args...); err != nil {
		return pkgError("pkgmgr.installPackages", "failed to install base packages", err, apperrors.Metadata{
			"packages": strings.Join(missing, ","),
		})
	}

	m.log.Debug("installed base packages: %s", strings.Join(missing, ", "))
	return nil
}

func (m *Manager) missingPackages(ctx context.Context) ([]string, error) {
	installed, err := m.installedPackageSet(ctx)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, pkg := range BasePackages {
		if _, exists := installed[pkg]; !exists {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}

func (m *Manager) installedPackageSet(ctx context.Context) (map[string]struct{}, error) {
	output, err := m.runner.Output(ctx, "dpkg-query", "-W", "-f=${binary:Package}\n")
	if err != nil {
		return nil, pkgError("pkgmgr.installedPackageSet", "dpkg-query failed", err, nil)
	}

	result := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		pkg := strings.TrimSpace(line)
		if pkg == "" {
			continue
		}
		result[pkg] = struct{}{}
		if idx := strings.Index(pkg, ":"); idx > 0 {
			result[pkg[:idx]] = struct{}{}
		}
	}
	return result, nil
}

func pkgError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	appErr := apperrors.PackageError(apperrors.CodePackageGeneric, message, err).
		WithModule("pkgmgr").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
