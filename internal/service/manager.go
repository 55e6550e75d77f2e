// Package service installs and activates the setup service systemd unit.
package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "llb/internal/errors"
	"llb/internal/execx"
	"llb/internal/logger"
)

const (
	defaultUnitDir = "/etc/systemd/system"
	unitMode       = 0o644
)

// Manager copies the unit file shipped in the checkout into the systemd unit
// directory and activates it. The unit contents are never parsed or modified.
type Manager struct {
	runner execx.Runner
	log    logger.Logger

	unitName   string
	sourcePath string
	unitDir    string
}

// NewManager constructs a Manager for the given unit.
func NewManager(unitName, sourcePath string, runner execx.Runner, log logger.Logger) *Manager {
	if runner == nil {
		runner = execx.System{}
	}
	return &Manager{
		runner:     runner,
		log:        log,
		unitName:   unitName,
		sourcePath: sourcePath,
		unitDir:    defaultUnitDir,
	}
}

// Install registers the unit, reloads the daemon, and starts the service
// enabled for boot. Re-running overwrites the unit file, so the operation is
// idempotent. Any failure is fatal.
func (m *Manager) Install(ctx context.Context) error {
	if err := m.copyUnit(); err != nil {
		return err
	}

	if err := m.runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return svcError("service.daemonReload", "systemctl daemon-reload failed", err, nil)
	}

	if err := m.runner.Run(ctx, "systemctl", "enable", "--now", m.unitName); err != nil {
		return svcError("service.enable", "failed to enable and start service", err, apperrors.Metadata{
			"unit": m.unitName,
		})
	}

	m.log.Debug("service %s enabled and started", m.unitName)
	return nil
}

func (m *Manager) copyUnit() error {
	in, err := os.Open(m.sourcePath)
	if err != nil {
		return svcError("service.copyUnit", "unit file not found in checkout", err, apperrors.Metadata{
			"source": m.sourcePath,
		})
	}
	defer in.Close()

	target := filepath.Join(m.unitDir, m.unitName)
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, unitMode)
	if err != nil {
		return svcError("service.copyUnit", "failed to create unit file", err, apperrors.Metadata{
			"target": target,
		})
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return svcError("service.copyUnit", "failed to copy unit file", err, apperrors.Metadata{
			"source": m.sourcePath,
			"target": target,
		})
	}

	if err := out.Close(); err != nil {
		return svcError("service.copyUnit", "failed to close unit file", err, apperrors.Metadata{
			"target": target,
		})
	}

	return nil
}

// Status reports the unit's activation and boot-enablement state as printed
// by systemctl. Unknown states come back verbatim for display.
type Status struct {
	Active  string
	Enabled string
}

// Status queries systemctl for the current unit state. systemctl exits
// non-zero for inactive/disabled units while still printing the state, so
// command errors are ignored whenever output was produced.
func (m *Manager) Status(ctx context.Context) Status {
	return Status{
		Active:  m.query(ctx, "is-active"),
		Enabled: m.query(ctx, "is-enabled"),
	}
}

func (m *Manager) query(ctx context.Context, verb string) string {
	output, _ := m.runner.Output(ctx, "systemctl", verb, m.unitName)
	state := strings.TrimSpace(string(output))
	if state == "" {
		return "unknown"
	}
	return state
}

func svcError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	appErr := apperrors.ServiceError(apperrors.CodeServiceGeneric, message, err).
		WithModule("service").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
