package messages

// Configuration loading and validation messages.
const (
	// ConfigReadFmt formats config file read errors.
	ConfigReadFmt            = "read config %s: %w"
	ConfigParseFmt           = "parse config %s: %w"
	ConfigUnknownKeysFmt     = "config %s has unrecognized keys: %v."
	ConfigValidationGuidance = "Run `rimeup config init --force` to restore the default file, or fix the keys above."
	ConfigTemplateReadFmt    = "read embedded default config: %w"
	ConfigExpandPathFmt      = "expand path %q: %w"

	ConfigArchivePathRequired  = "archive.path must not be empty"
	ConfigScratchDirRequired   = "archive.scratch_dir must not be empty"
	ConfigTargetDirRequired    = "install.target_dir must not be empty"
	ConfigBackupPrefixRequired = "install.backup_prefix must not be empty"
	ConfigLogDirRequired       = "logging.dir must not be empty"
	ConfigDepsRequired         = "deps.required must list at least one executable"
	ConfigDepDuplicateFmt      = "deps.required lists %q more than once"
	ConfigManagersRequired     = "deps.managers must list at least one package manager"
	ConfigManagerNameRequired  = "deps.managers entries must set name"
	ConfigManagerArgsFmt       = "deps.managers entry %q must set update_args and install_args"
)

// Comment-preserving config edit messages.
const (
	ConfigEditUnknownKeyFmt    = "unknown config key %q (settable keys: %s)"
	ConfigEditSyntaxFmt        = "config is not valid TOML: %w"
	ConfigEditInvalidResultFmt = "refusing to write config: %w"
	ConfigEditReadFmt          = "read config %s: %w (run `rimeup config init` to create it)"
	ConfigEditWriteFmt         = "write config %s: %w"
)
