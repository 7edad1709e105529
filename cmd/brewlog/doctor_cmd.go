package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/config"
	"github.com/raphi011/brewlog/internal/doctor"
	"github.com/raphi011/brewlog/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair issues",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair the local setup.

Checks:
- Config file parses and is valid
- Local storage file is readable
- Stored token is current (not expired, not under the legacy key)
- The service answers its health check`,
		Example: `  brewlog doctor          # Check for issues
  brewlog doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			configPath, _ := config.Path()
			env := doctor.Env{
				ConfigPath: configPath,
				Store:      a.store,
				StorePath:  a.store.Path(),
				Health:     a.client,
				BaseURL:    a.client.BaseURL(),
			}

			report, err := doctor.Run(ctx, env, out.Writer(), fix)
			if err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d fixes failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}
