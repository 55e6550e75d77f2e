// Package pydeps installs the Python dependency manifest of the setup service.
package pydeps

import (
	"context"
	"os"

	apperrors "llb/internal/errors"
	"llb/internal/execx"
	"llb/internal/logger"
)

// Installer installs the dependency manifest via pip with a single fallback mode.
type Installer struct {
	runner   execx.Runner
	log      logger.Logger
	manifest string
}

// NewInstaller constructs an Installer for the given manifest path.
func NewInstaller(manifest string, runner execx.Runner, log logger.Logger) *Installer {
	if runner == nil {
		runner = execx.System{}
	}
	return &Installer{runner: runner, log: log, manifest: manifest}
}

// Install runs pip against the manifest. If the primary invocation exits
// non-zero, exactly one fallback attempt is made with --break-system-packages
// (Debian marks the system interpreter externally managed, PEP 668). A second
// failure is fatal.
func (i *Installer) Install(ctx context.Context) error {
	if _, err := os.Stat(i.manifest); err != nil {
		return depError("pydeps.Install", "dependency manifest not found", err, apperrors.Metadata{
			"manifest": i.manifest,
		})
	}

	primaryErr := i.runner.Run(ctx, "pip3", "install", "-r", i.manifest)
	if primaryErr == nil {
		return nil
	}

	i.log.Warn("pip install failed, retrying with --break-system-packages: %v", primaryErr)

	if err := i.runner.Run(ctx, "pip3", "install", "-r", i.manifest, "--break-system-packages"); err != nil {
		return depError("pydeps.Install", "pip install failed in both modes", err, apperrors.Metadata{
			"manifest":      i.manifest,
			"primary_error": primaryErr.Error(),
		})
	}

	return nil
}

func depError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	appErr := apperrors.DependencyError(apperrors.CodeDependencyGeneric, message, err).
		WithModule("pydeps").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
