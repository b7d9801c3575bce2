package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/distro"
	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/optimize"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Check and maintain system",
	Long:  "Refresh caches, remove orphaned packages, and trim the system journal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &exitcodes.UsageError{Err: err}
		}

		wl := whitelist.Load()
		wl.Extend(cfg.Whitelist)

		elevated := core.IsRoot()
		exec := core.NewExecutor(core.NewValidator(wl, elevated), &fsops.OSDeleter{})

		journal := openJournal()
		if journal != nil {
			defer journal.Close()
		}

		d := distro.Detect()
		return optimize.Run(cmd.Context(), optimize.Deps{
			Exec:       exec,
			Runner:     runner.ExecRunner{},
			PkgManager: d.PkgManager,
			JournalMax: cfg.JournalMaxSize,
		}, optimize.Options{
			DryRun:   dryRun,
			Elevated: elevated,
			Journal:  journal,
		})
	},
}

func init() {
	optimizeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview optimization actions")
}
