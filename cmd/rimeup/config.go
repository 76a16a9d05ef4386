package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cranekit/rimeup/internal/configedit"
	"github.com/cranekit/rimeup/internal/fsutil"
	"github.com/cranekit/rimeup/internal/messages"
	"github.com/cranekit/rimeup/internal/templates"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigInitCmd(root))
	cmd.AddCommand(newConfigSetCmd(root))
	return cmd
}

func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   messages.ConfigInitUse,
		Short: messages.ConfigInitShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configFile()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf(messages.ConfigInitExistsFmt, path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}
			data, err := templates.Read(templates.ConfigName)
			if err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
				return fmt.Errorf(messages.ConfigInitWriteFmt, path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigInitWroteFmt, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.ConfigInitFlagForce)
	return cmd
}

func newConfigSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigSetUse,
		Short: messages.ConfigSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configFile()
			if err := configedit.Set(path, args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigSetUpdatedFmt, args[0], path)
			return nil
		},
	}
}
