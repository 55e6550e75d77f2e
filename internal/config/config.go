package config

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Embedded defaults. The tool takes no flags or arguments; these two
// constants fully determine its behaviour on a stock machine.
const (
	DefaultRepoURL    = "https://github.com/lustylibrary/lustylibrary-installer.git"
	DefaultInstallDir = "/opt/lustylibrary-installer"

	// DefaultSetupPort is the port the installed setup service listens on.
	// It is referenced only in the printed instructions; the service owns it.
	DefaultSetupPort = 9000

	// ServiceUnit is the systemd unit shipped inside the installer checkout.
	ServiceUnit = "setup_gui.service"

	// ManifestName is the Python dependency manifest inside the checkout.
	ManifestName = "requirements.txt"

	// OverridePath points at an optional YAML file overriding the defaults,
	// used for development mirrors. Its absence is not an error.
	OverridePath = "/etc/llb/config.yml"

	defaultStateDir = "/var/lib/llb"
)

// Config captures runtime characteristics and paths used by the bootstrap.
type Config struct {
	RepoURL    string
	Branch     string
	InstallDir string
	StateDir   string
	SetupPort  int

	Architecture string
	VirtType     string
}

// Load builds a Config from the embedded defaults, detected system
// attributes, and the optional override file.
func Load() (*Config, error) {
	cfg := &Config{
		RepoURL:    DefaultRepoURL,
		InstallDir: DefaultInstallDir,
		StateDir:   defaultStateDir,
		SetupPort:  DefaultSetupPort,
	}

	arch, err := detectArchitecture()
	if err != nil {
		return nil, errors.Wrap(err, "architecture detection failed")
	}
	cfg.Architecture = arch
	cfg.VirtType = detectVirtualization()

	if err := cfg.applyOverrideFile(OverridePath); err != nil {
		return nil, err
	}

	return cfg, nil
}

type overrides struct {
	RepoURL   string `yaml:"repo_url"`
	Branch    string `yaml:"branch"`
	SetupPort int    `yaml:"setup_port"`
}

func (c *Config) applyOverrideFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read override file %s", path)
	}
	return c.applyOverrides(data)
}

func (c *Config) applyOverrides(data []byte) error {
	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return errors.Wrap(err, "failed to parse override file")
	}

	if o.RepoURL != "" {
		c.RepoURL = o.RepoURL
	}
	if o.Branch != "" {
		c.Branch = o.Branch
	}
	if o.SetupPort != 0 {
		c.SetupPort = o.SetupPort
	}
	return nil
}

// Validate ensures required commands are present and the state directory
// exists. git and pip3 are not required here: the base package step installs
// them before anything needs them.
func (c *Config) Validate() error {
	requiredCommands := []string{"apt-get", "systemctl"}
	for _, cmd := range requiredCommands {
		if _, err := exec.LookPath(cmd); err != nil {
			return errors.Errorf("missing required system command: %s", cmd)
		}
	}

	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create state directory %s", c.StateDir)
	}

	return nil
}

// ManifestPath returns the dependency manifest location inside the checkout.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.InstallDir, ManifestName)
}

// UnitSourcePath returns the service unit location inside the checkout.
func (c *Config) UnitSourcePath() string {
	return filepath.Join(c.InstallDir, ServiceUnit)
}

// JournalPath returns the location of the bootstrap run journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.StateDir, "journal.db")
}

// IsSupportedArchitecture reports whether the detected architecture is supported.
func (c *Config) IsSupportedArchitecture() bool {
	return c.Architecture == "amd64" || c.Architecture == "arm64"
}

// IsContainer reports whether the environment is containerized.
func (c *Config) IsContainer() bool {
	return c.VirtType == "container"
}
