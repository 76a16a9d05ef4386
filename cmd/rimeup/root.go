package main

import (
	"github.com/spf13/cobra"

	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/messages"
)

// rootOptions holds the persistent flag values shared by every subcommand.
type rootOptions struct {
	configPath string
	logDir     string
	verbose    bool
}

// loadConfig resolves the run configuration. An explicit --config file must
// exist and parse; otherwise rimeup.toml in the working directory is used
// when present, falling back to the built-in defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultConfigFile)
	}
	if err != nil {
		return nil, err
	}
	if o.logDir != "" {
		cfg.Logging.Dir = o.logDir
	}
	return cfg, nil
}

// configFile is the path `config init` and `config set` operate on.
func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultConfigFile
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", messages.RootFlagLogDir)
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, messages.RootFlagVerbose)
	cmd.AddCommand(newInstallCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}
