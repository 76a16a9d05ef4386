package messages

// Environment check command messages.
const (
	CheckUse   = "check"
	CheckShort = "Check that the host is ready for an install"

	CheckHeaderFmt      = "rimeup %s environment check\n\n"
	CheckFailureSummary = "\nSome checks failed. Fix the failures above and re-run."
	CheckFailureError   = "environment check failed"
	CheckSuccessSummary = "\nAll checks passed."

	CheckStatusOKLabel        = "[OK]  "
	CheckStatusWarnLabel      = "[WARN]"
	CheckStatusFailLabel      = "[FAIL]"
	CheckResultLineFmt        = "%s %-15s %s\n"
	CheckRecommendationPrefix = "       → "

	CheckNameDependency = "dependency"
	CheckNameManager    = "package manager"
	CheckNameArchive    = "archive"
	CheckNameScratch    = "scratch dir"
	CheckNameLogDir     = "log dir"
	CheckNameElevation  = "elevation"
	CheckNameTarget     = "target dir"

	CheckDepFoundFmt             = "%s found at %s"
	CheckDepMissingFmt           = "%s not found on PATH"
	CheckDepInstallRecommendFmt  = "run `rimeup install` to add %s via %s"
	CheckDepManualRecommendFmt   = "install %s manually, then re-run `rimeup check`"
	CheckManagerFoundFmt         = "using %s"
	CheckManagerNoneFmt          = "none of the supported managers (%s) detected"
	CheckManagerNoneRecommend    = "missing dependencies must be installed manually on this system"
	CheckArchiveFoundFmt         = "%s (%d bytes)"
	CheckArchiveMissingFmt       = "%s does not exist or is not a regular file"
	CheckArchiveMissingRecommend = "place the schema archive next to rimeup, or point at it with --archive or `rimeup config set archive.path <path>`"
	CheckScratchWritableFmt      = "%s is writable"
	CheckScratchNotWritableFmt   = "cannot write under %s: %v"
	CheckScratchRecommend        = "choose a writable scratch directory with --scratch"
	CheckLogDirWritableFmt       = "%s is writable"
	CheckLogDirNotWritableFmt    = "cannot write log directory %s: %v"
	CheckLogDirRecommend         = "choose a writable log directory with --log-dir"
	CheckElevationRoot           = "running as root; no elevation needed"
	CheckElevationSudoFmt        = "sudo found at %s"
	CheckElevationMissing        = "sudo not found and not running as root"
	CheckElevationRecommend      = "install sudo or run rimeup as root"
	CheckTargetAbsentFmt         = "%s does not exist yet; it will be created"
	CheckTargetStateFmt          = "%s exists with %d entries; a timestamped backup is taken before mirroring"
	CheckTargetUnreadableFmt     = "%s exists but cannot be read: %v"
)
