package config

import (
	"os/exec"
	"runtime"
	"strings"

	apperrors "llb/internal/errors"
)

func detectArchitecture() (string, error) {
	output, err := exec.Command("dpkg", "--print-architecture").Output()
	if err != nil {
		switch runtime.GOARCH {
		case "amd64":
			return "amd64", nil
		case "arm64":
			return "arm64", nil
		default:
			return "", apperrors.SystemError(apperrors.CodeSystemGeneric, "unsupported architecture", nil).
				WithModule("config").
				WithOperation("config.detectArchitecture").
				WithField("goarch", runtime.GOARCH)
		}
	}

	return strings.TrimSpace(string(output)), nil
}

func detectVirtualization() string {
	output, err := exec.Command("systemd-detect-virt").Output()
	if err != nil {
		return "physical"
	}

	virt := strings.TrimSpace(string(output))
	containerTypes := []string{
		"openvz", "lxc", "lxc-libvirt", "systemd-nspawn",
		"docker", "podman", "proot", "pouch",
	}

	for _, containerType := range containerTypes {
		if virt == containerType {
			return "container"
		}
	}

	return "vm"
}
