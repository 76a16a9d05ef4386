package messages

// System directory synchronization messages.
const (
	SysdirTargetExists = "target directory already exists"
	SysdirTargetNew    = "target directory does not exist yet"
	SysdirBackingUp    = "backing up existing target"
	SysdirBackupEmpty  = "target exists but is empty; skipping backup copy"
	SysdirMirroring    = "mirroring configuration into target"
	SysdirMirrorCmd    = "mirror command failed"
	SysdirFixingPerms  = "normalizing permissions"
	SysdirBinPermWarn  = "could not mark .bin files executable"
	SysdirDone         = "target synchronized"

	SysdirSourceMissingFmt = "configuration source %s does not exist"
	SysdirStepFailedFmt    = "%s: %v"
	SysdirReadTargetFmt    = "read target directory %s: %w"
	SysdirMirrorFailedFmt  = "mirror exited non-zero: %v (stderr: %s)"
	SysdirPermFailedFmt    = "permission normalization failed for %s: %v"

	SysdirStepBackupDir  = "create backup directory"
	SysdirStepBackupCopy = "back up existing target"
	SysdirStepTargetDir  = "create target directory"
)
