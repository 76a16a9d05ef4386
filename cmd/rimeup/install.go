package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/installer"
	"github.com/cranekit/rimeup/internal/logging"
	"github.com/cranekit/rimeup/internal/messages"
	"github.com/cranekit/rimeup/internal/prompt"
)

var installRunFn = installer.Run

func newInstallCmd(root *rootOptions) *cobra.Command {
	var archivePath string
	var scratchDir string
	var targetDir string
	var backupPrefix string
	var yes bool
	var dryRun bool
	var skipDeps bool

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Long:  messages.InstallLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if archivePath != "" {
				cfg.Archive.Path = archivePath
			}
			if scratchDir != "" {
				cfg.Archive.ScratchDir = scratchDir
			}
			if targetDir != "" {
				cfg.Install.TargetDir = targetDir
			}
			if backupPrefix != "" {
				cfg.Install.BackupPrefix = backupPrefix
			}

			run, err := logging.Open(cfg.Logging.Dir, cmd.ErrOrStderr(), time.Now())
			if err != nil {
				return err
			}
			defer func() { _ = run.Close() }()
			if root.verbose {
				run.SetLevel(log.DebugLevel)
			}
			run.Info(messages.InstallStarted, "version", versionString(), "log", run.Path)

			err = installRunFn(installer.Options{
				Config:    cfg,
				Runner:    execx.System{},
				Log:       run.Logger,
				Out:       cmd.OutOrStdout(),
				Confirmer: prompt.NewHuhConfirmer(),
				SkipDeps:  skipDeps,
				DryRun:    dryRun,
				Yes:       yes,
			})
			if errors.Is(err, installer.ErrDeclined) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.YellowString(messages.InstallAborted))
				return &SilentExitError{Code: 1}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&archivePath, "archive", "", messages.InstallFlagArchive)
	cmd.Flags().StringVar(&scratchDir, "scratch", "", messages.InstallFlagScratch)
	cmd.Flags().StringVar(&targetDir, "target", "", messages.InstallFlagTarget)
	cmd.Flags().StringVar(&backupPrefix, "backup-prefix", "", messages.InstallFlagBackupPrefix)
	cmd.Flags().BoolVar(&yes, "yes", false, messages.InstallFlagYes)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.InstallFlagDryRun)
	cmd.Flags().BoolVar(&skipDeps, "skip-deps", false, messages.InstallFlagSkipDeps)
	return cmd
}
