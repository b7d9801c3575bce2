package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/purge"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

var (
	purgePaths   []string
	purgeMinAge  int
	purgeMinSize string
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Clean project build artifacts",
	Long:  "Find and remove build artifacts (node_modules, target, venv, etc.) from project directories.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &exitcodes.UsageError{Err: err}
		}

		paths := purgePaths
		if len(paths) == 0 {
			paths = cfg.ProjectPaths
		}

		minAge := purgeMinAge
		if !cmd.Flags().Changed("min-age") {
			minAge = cfg.SkipRecentDays
		}

		minSize, err := purge.ParseMinSize(purgeMinSize)
		if err != nil {
			return &exitcodes.UsageError{Err: err}
		}

		wl := whitelist.Load()
		wl.Extend(cfg.Whitelist)
		exec := core.NewExecutor(core.NewValidator(wl, core.IsRoot()), &fsops.OSDeleter{})

		journal := openJournal()
		if journal != nil {
			defer journal.Close()
		}

		_, err = purge.Run(exec, purge.Options{
			Paths:      paths,
			MinAgeDays: minAge,
			MinSize:    minSize,
			DryRun:     dryRun,
			Journal:    journal,
		})
		return err
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
	purgeCmd.Flags().StringSliceVar(&purgePaths, "paths", nil, "Project directories to scan (comma separated)")
	purgeCmd.Flags().IntVar(&purgeMinAge, "min-age", 7, "Minimum age in days (recent projects are skipped)")
	purgeCmd.Flags().StringVar(&purgeMinSize, "min-size", "", "Minimum artifact size to show (e.g., 50MB)")
}
