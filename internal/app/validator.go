package app

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"llb/internal/config"
	"llb/internal/logger"
)

// Minimum free disk space required to install packages and the checkout.
const minDiskSpaceMB = 1024

// Validator checks that the machine can actually run the bootstrap.
type Validator struct {
	cfg *config.Config
	log logger.Logger
}

// NewValidator constructs a Validator.
func NewValidator(cfg *config.Config, log logger.Logger) *Validator {
	return &Validator{cfg: cfg, log: log}
}

// ValidateEnvironment verifies OS family, architecture, required commands,
// and available disk space.
func (v *Validator) ValidateEnvironment() error {
	content, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return errors.Wrap(err, "failed to read system information")
	}
	name, err := checkOSRelease(content)
	if err != nil {
		return err
	}
	if name != "" {
		v.log.Debug("detected system: %s", name)
	}

	if !v.cfg.IsSupportedArchitecture() {
		return errors.Errorf("unsupported system architecture: %s", v.cfg.Architecture)
	}

	if err := v.cfg.Validate(); err != nil {
		return err
	}

	if err := v.validateDiskSpace(); err != nil {
		return err
	}

	v.log.Debug("environment validation passed")
	return nil
}

// checkOSRelease verifies the os-release contents describe a Debian family
// system and returns the pretty name when present.
func checkOSRelease(content []byte) (string, error) {
	osInfo := string(content)

	if !strings.Contains(osInfo, "ID=debian") && !strings.Contains(osInfo, "ID_LIKE=debian") {
		return "", errors.New("this tool only supports Debian and its derivatives")
	}

	for _, line := range strings.Split(osInfo, "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), "\""), nil
		}
	}
	return "", nil
}

func (v *Validator) validateDiskSpace() error {
	var stat unix.Statfs_t
	if err := unix.Statfs("/", &stat); err != nil {
		return errors.Wrap(err, "failed to get disk space information")
	}

	availableMB := stat.Bavail * uint64(stat.Bsize) / (1024 * 1024)
	if availableMB < minDiskSpaceMB {
		return errors.Errorf("insufficient disk space: %dMB required, %dMB available",
			minDiskSpaceMB, availableMB)
	}

	v.log.Debug("disk available space: %d MB", availableMB)
	return nil
}
