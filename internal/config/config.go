// Package config defines the rimeup configuration and its defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/cranekit/rimeup/internal/messages"
)

// Default locations install the shipped 小鹤音形 package.
const (
	DefaultArchivePath  = "./小鹤音形“鼠须管”for macOS.zip"
	DefaultScratchDir   = "./extracted"
	DefaultTargetDir    = "/usr/share/rime-data"
	DefaultBackupPrefix = "/usr/share/rime-backup"
	DefaultLogDir       = "logs"

	// DefaultConfigFile is looked up in the working directory when --config
	// is not given.
	DefaultConfigFile = "rimeup.toml"
)

// Archive configures where the schema package comes from and where it is
// unpacked.
type Archive struct {
	Path       string `toml:"path"`
	ScratchDir string `toml:"scratch_dir"`
}

// Install configures the mirror destination and its backups.
type Install struct {
	TargetDir    string `toml:"target_dir"`
	BackupPrefix string `toml:"backup_prefix"`
}

// Logging configures the per-run log location.
type Logging struct {
	Dir string `toml:"dir"`
}

// Manager describes one system package manager rimeup can install
// dependencies through.
type Manager struct {
	Name        string   `toml:"name"`
	UpdateArgs  []string `toml:"update_args"`
	InstallArgs []string `toml:"install_args"`
}

// Deps configures the required executables and the managers that can
// install them.
type Deps struct {
	Required []string  `toml:"required"`
	Managers []Manager `toml:"managers"`
}

// Config is the full rimeup configuration.
type Config struct {
	Archive Archive `toml:"archive"`
	Install Install `toml:"install"`
	Logging Logging `toml:"logging"`
	Deps    Deps    `toml:"deps"`
}

// DefaultRequired lists the executables the installer shells out to.
func DefaultRequired() []string {
	return []string{"curl", "7z", "rsync"}
}

// DefaultManagers lists the supported package managers in detection
// priority order.
func DefaultManagers() []Manager {
	return []Manager{
		{Name: "pacman", UpdateArgs: []string{"-Sy"}, InstallArgs: []string{"-S", "--noconfirm"}},
		{Name: "apt", UpdateArgs: []string{"update"}, InstallArgs: []string{"install", "-y"}},
		{Name: "dnf", UpdateArgs: []string{"check-update"}, InstallArgs: []string{"install", "-y"}},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Archive: Archive{Path: DefaultArchivePath, ScratchDir: DefaultScratchDir},
		Install: Install{TargetDir: DefaultTargetDir, BackupPrefix: DefaultBackupPrefix},
		Logging: Logging{Dir: DefaultLogDir},
		Deps:    Deps{Required: DefaultRequired(), Managers: DefaultManagers()},
	}
}

// Validate checks the configuration for values the installer cannot run with.
func (c *Config) Validate() []string {
	var problems []string
	if strings.TrimSpace(c.Archive.Path) == "" {
		problems = append(problems, messages.ConfigArchivePathRequired)
	}
	if strings.TrimSpace(c.Archive.ScratchDir) == "" {
		problems = append(problems, messages.ConfigScratchDirRequired)
	}
	if strings.TrimSpace(c.Install.TargetDir) == "" {
		problems = append(problems, messages.ConfigTargetDirRequired)
	}
	if strings.TrimSpace(c.Install.BackupPrefix) == "" {
		problems = append(problems, messages.ConfigBackupPrefixRequired)
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		problems = append(problems, messages.ConfigLogDirRequired)
	}
	if len(c.Deps.Required) == 0 {
		problems = append(problems, messages.ConfigDepsRequired)
	}
	seen := make(map[string]bool, len(c.Deps.Required))
	for _, name := range c.Deps.Required {
		if seen[name] {
			problems = append(problems, fmt.Sprintf(messages.ConfigDepDuplicateFmt, name))
			continue
		}
		seen[name] = true
	}
	if len(c.Deps.Managers) == 0 {
		problems = append(problems, messages.ConfigManagersRequired)
	}
	for _, m := range c.Deps.Managers {
		if strings.TrimSpace(m.Name) == "" {
			problems = append(problems, messages.ConfigManagerNameRequired)
			continue
		}
		if len(m.UpdateArgs) == 0 || len(m.InstallArgs) == 0 {
			problems = append(problems, fmt.Sprintf(messages.ConfigManagerArgsFmt, m.Name))
		}
	}
	return problems
}

// merge overlays file values onto the defaults. Empty strings and absent
// lists keep the built-in values; a list given in the file replaces the
// default list wholesale.
func (c *Config) merge(overlay *Config) {
	if overlay.Archive.Path != "" {
		c.Archive.Path = overlay.Archive.Path
	}
	if overlay.Archive.ScratchDir != "" {
		c.Archive.ScratchDir = overlay.Archive.ScratchDir
	}
	if overlay.Install.TargetDir != "" {
		c.Install.TargetDir = overlay.Install.TargetDir
	}
	if overlay.Install.BackupPrefix != "" {
		c.Install.BackupPrefix = overlay.Install.BackupPrefix
	}
	if overlay.Logging.Dir != "" {
		c.Logging.Dir = overlay.Logging.Dir
	}
	if overlay.Deps.Required != nil {
		c.Deps.Required = overlay.Deps.Required
	}
	if overlay.Deps.Managers != nil {
		c.Deps.Managers = overlay.Deps.Managers
	}
}

// expandPaths resolves ~ in every configured path.
func (c *Config) expandPaths() error {
	for _, field := range []*string{
		&c.Archive.Path,
		&c.Archive.ScratchDir,
		&c.Install.TargetDir,
		&c.Install.BackupPrefix,
		&c.Logging.Dir,
	} {
		expanded, err := homedir.Expand(*field)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, *field, err)
		}
		*field = expanded
	}
	return nil
}
