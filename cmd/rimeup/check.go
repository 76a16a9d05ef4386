package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cranekit/rimeup/internal/check"
	"github.com/cranekit/rimeup/internal/deps"
	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

var checkRunFn = check.Run

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.CheckHeaderFmt, versionString())

			hasFail := false
			for _, r := range checkRunFn(cfg, execx.System{}, deps.DefaultBinDir) {
				printResult(out, r)
				if r.Status == check.StatusFail {
					hasFail = true
				}
			}

			if hasFail {
				_, _ = fmt.Fprintln(out, color.RedString(messages.CheckFailureSummary))
				return fmt.Errorf(messages.CheckFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.CheckSuccessSummary))
			return nil
		},
	}
}

func printResult(out io.Writer, r check.Result) {
	var status string
	switch r.Status {
	case check.StatusOK:
		status = color.GreenString(messages.CheckStatusOKLabel)
	case check.StatusWarn:
		status = color.YellowString(messages.CheckStatusWarnLabel)
	case check.StatusFail:
		status = color.RedString(messages.CheckStatusFailLabel)
	}
	_, _ = fmt.Fprintf(out, messages.CheckResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.CheckRecommendationPrefix, r.Recommendation)
	}
}
