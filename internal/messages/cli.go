// Package messages centralizes user-visible strings for the rimeup CLI.
package messages

// Root command and version strings.
const (
	RootUse   = "rimeup"
	RootShort = "Install the Xiaohe (flypy) Rime schema package system-wide"
	RootLong  = `rimeup installs a Rime schema package into the system data directory.

It ensures the external tools it shells out to are present (installing them
through the host package manager when missing), extracts the schema archive
into a scratch directory, and mirrors the result into the system target
directory after backing up whatever was there before.`

	RootFlagConfig  = "path to the configuration file (default rimeup.toml when present)"
	RootFlagLogDir  = "directory for per-run log files (overrides the configured value)"
	RootFlagVerbose = "enable debug logging"

	VersionTemplate  = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
)

// Install command strings.
const (
	InstallUse   = "install"
	InstallShort = "Run the full install: dependencies, extraction, system sync"
	InstallLong  = `Run the complete install sequence.

Missing dependencies are installed through the first supported package
manager found on the system (pacman, apt, dnf). The schema archive is then
extracted into the scratch directory and mirrored into the target system
directory. If the target already exists it is backed up to a timestamped
directory first. Anything in the target that is not part of the package is
deleted by the mirror.`

	InstallFlagArchive      = "path to the schema package archive"
	InstallFlagScratch      = "scratch directory cleared and reused for extraction"
	InstallFlagTarget       = "system directory the schema is mirrored into"
	InstallFlagBackupPrefix = "path prefix for timestamped backups of the target"
	InstallFlagYes          = "skip the confirmation prompt"
	InstallFlagDryRun       = "print the install plan and stop before any system change"
	InstallFlagSkipDeps     = "skip the dependency check and install phase"

	InstallStarted = "install run started"
	InstallAborted = "Install aborted; nothing was changed."
)

// Config command strings.
const (
	ConfigUse   = "config"
	ConfigShort = "Manage the rimeup configuration file"

	ConfigInitUse       = "init"
	ConfigInitShort     = "Write the default rimeup.toml"
	ConfigInitFlagForce = "overwrite an existing configuration file"
	ConfigInitExistsFmt = "%s already exists; pass --force to overwrite it"
	ConfigInitWriteFmt  = "write %s: %w"
	ConfigInitWroteFmt  = "Wrote %s\n"

	ConfigSetUse        = "set <key> <value>"
	ConfigSetShort      = "Update one configuration key in place"
	ConfigSetUpdatedFmt = "Set %s in %s\n"
)
