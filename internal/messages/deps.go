package messages

// Dependency check and install messages.
const (
	// DepsPresent and DepsAbsent are logged once per required executable.
	DepsPresent       = "dependency present"
	DepsAbsent        = "dependency missing"
	DepsAllPresent    = "all dependencies present"
	DepsInstalling    = "installing missing dependencies"
	DepsInstalled     = "dependencies installed"
	DepsNoManager     = "no supported package manager found"
	DepsCommandFailed = "package manager command failed"

	DepsNoManagerFmt     = "missing dependencies (%s) and no supported package manager found; install them manually and re-run"
	DepsInstallFailedFmt = "dependency install command failed (%s): %v"
)
