// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/probelab/scanprep/cmd/scanprep/commands/common"
	"github.com/probelab/scanprep/cmd/scanprep/commands/version"
	"github.com/probelab/scanprep/internal/config"
	"github.com/probelab/scanprep/internal/core"
	"github.com/probelab/scanprep/internal/doctor"
	"github.com/probelab/scanprep/internal/setup"
)

// examples:
// sudo ./scanprep
// sudo DEBUG=true ./scanprep
// sudo SCANPREP_PACKAGES=nmap,tcpdump ./scanprep

// rootCmd runs the provisioning workflow when called without a subcommand
var (
	// Used for flags.
	flagVersion      bool
	flagOutputFormat string
	flagReport       bool
	flagPackages     []string

	rootCmd = &cobra.Command{
		Use:   core.AppName,
		Short: "Prepares a Debian or Ubuntu host for network scanning",
		Long: "Scanprep updates an apt based host and installs the network scanning toolchain, " +
			"verifying every installed program before reporting success",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				version.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			if len(flagPackages) > 0 {
				cfg := config.Get()
				cfg.Packages = flagPackages
				if err := config.Set(&cfg); err != nil {
					return err
				}
			}

			return common.RunProvisioning(cmd.Context(), flagReport)
		},
	}
)

func init() {
	// support '--version', '-v' to show version information
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Show version")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")
	common.FlagReport.SetVar(rootCmd, &flagReport, false)
	common.FlagPackages.SetVar(rootCmd, &flagPackages, false)

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(version.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	return err
}

func initConfig(ctx context.Context) {
	if err := config.Initialize(); err != nil {
		doctor.CheckErr(ctx, err)
	}

	if err := setup.InitializeLogging(); err != nil {
		doctor.CheckErr(ctx, err)
	}

	if err := setup.EnsureRuntimeDirs(); err != nil {
		doctor.CheckErr(ctx, err)
	}
}
