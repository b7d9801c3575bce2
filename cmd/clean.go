package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/clean"
	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

var (
	cleanAllFlag     bool
	cleanUserFlag    bool
	cleanSystemFlag  bool
	cleanBrowserFlag bool
	cleanDevFlag     bool
	cleanWhitelist   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long:  "Deep cleanup of caches, logs, temp files, and browser leftovers to reclaim disk space.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &exitcodes.UsageError{Err: err}
		}

		wl := whitelist.Load()
		wl.Extend(cfg.Whitelist)

		if cleanWhitelist != "" {
			if err := wl.Add(cleanWhitelist); err != nil {
				return err
			}
			fmt.Printf("%s Whitelisted %s\n", ui.SuccessStyle().Render(ui.IconCheck), cleanWhitelist)
			return nil
		}

		elevated := core.IsRoot()
		exec := core.NewExecutor(core.NewValidator(wl, elevated), &fsops.OSDeleter{})

		journal := openJournal()
		if journal != nil {
			defer journal.Close()
		}

		_, err = clean.Run(exec, wl, clean.Options{
			Categories: cleanCategories(),
			DryRun:     dryRun,
			Elevated:   elevated,
			Journal:    journal,
		})
		return err
	},
}

// cleanCategories maps the selection flags to target categories.
// Nothing selected (or --all) means every category.
func cleanCategories() []string {
	if cleanAllFlag {
		return nil
	}
	var cats []string
	if cleanUserFlag {
		cats = append(cats, "user")
	}
	if cleanBrowserFlag {
		cats = append(cats, "browser")
	}
	if cleanDevFlag {
		cats = append(cats, "dev")
	}
	if cleanSystemFlag {
		cats = append(cats, "system")
	}
	return cats
}

// openJournal opens the deletion history database. Failures only cost
// the history entries, never the run.
func openJournal() *history.Journal {
	j, err := history.Open(history.DefaultPath())
	if err != nil {
		logging.L().WithError(err).Debug("history journal unavailable")
		return nil
	}
	return j
}

func init() {
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().StringVar(&cleanWhitelist, "whitelist", "", "Add a path to the protected whitelist and exit")
	cleanCmd.Flags().BoolVar(&cleanAllFlag, "all", false, "Clean all categories")
	cleanCmd.Flags().BoolVar(&cleanUserFlag, "user", false, "Clean user caches only")
	cleanCmd.Flags().BoolVar(&cleanSystemFlag, "system", false, "Clean system caches only (requires root)")
	cleanCmd.Flags().BoolVar(&cleanBrowserFlag, "browser", false, "Clean browser caches only")
	cleanCmd.Flags().BoolVar(&cleanDevFlag, "dev", false, "Clean developer tool caches only")
}
