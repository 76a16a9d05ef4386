package messages

// Install orchestration messages.
const (
	InstallerPhaseDeps     = "ensuring dependencies"
	InstallerSkipDeps      = "skipping dependency phase"
	InstallerDryRunDeps    = "dry run: missing dependencies would be installed"
	InstallerPhaseExtract  = "acquiring configuration files"
	InstallerPhaseSync     = "installing into system directory"
	InstallerDepsFailed    = "dependency phase failed"
	InstallerAcquireFailed = "configuration acquisition failed"
	InstallerSyncFailed    = "system synchronization failed"
	InstallerPlanFailed    = "could not compute install plan"
	InstallerDryRun        = "dry run complete; no system changes made"
	InstallerDeclinedLog   = "user declined; aborting"
	InstallerDone          = "install complete"

	InstallerDeclined = "install declined at confirmation"

	InstallerConfirmTitleFmt    = "Mirror the schema package into %s?"
	InstallerConfirmDescription = "Anything in the target not present in the package will be deleted. A timestamped backup of the current target is taken first."

	InstallerSuccessNotice   = "Installation complete."
	InstallerBackupNoticeFmt = "Previous contents saved to %s\n"
	InstallerRedeployHint    = "Redeploy Rime to pick up the schema: right-click the input method tray icon and choose Redeploy (重新部署), then switch schemes with Ctrl+` or F4."

	InstallerPlanHeader       = "Install plan (current target vs incoming package):"
	InstallerPlanNoChanges    = "Target already matches the package; the mirror will make no changes."
	InstallerPlanTruncatedFmt = "... (%d more lines)"
	InstallerPlanSourceFmt    = "scan package tree: %w"
	InstallerPlanTargetFmt    = "scan target tree: %w"
)

// Run log lifecycle messages.
const (
	LogCreateDirFmt = "create log directory %s: %w"
	LogOpenFileFmt  = "open log file %s: %w"
)

// ExecTrace is the debug-level record written before every external command.
const ExecTrace = "running command"

// Single-run lock messages.
const (
	LockOpenFmt    = "open lock file %s: %w"
	LockAcquireFmt = "acquire lock %s: %w"
	LockHeldFmt    = "another rimeup run is active (lock %s is held)"
)

// Confirmation prompt messages.
const (
	PromptRequiresTerminal = "confirmation requires an interactive terminal; pass --yes to proceed without prompting"
	PromptAffirmative      = "Install"
	PromptNegative         = "Abort"
)
