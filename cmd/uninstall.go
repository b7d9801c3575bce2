package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
	"github.com/lakshaymaurya-felt/linmole/internal/uninstall"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

var uninstallAll bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [app-name]",
	Short: "Remove apps completely",
	Long:  "Remove applications along with their config, cache, and data leftovers.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
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

		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		opts := uninstall.Options{
			Name:    name,
			List:    uninstallAll,
			DryRun:  dryRun,
			Journal: journal,
		}
		if !dryRun && ui.IsInteractive(os.Stdin) {
			opts.Confirm = confirmUninstall
		}

		_, err = uninstall.Run(cmd.Context(), runner.ExecRunner{}, exec, opts)
		return err
	},
}

// confirmUninstall asks before each matched app is removed. Anything
// but y/yes declines.
func confirmUninstall(app uninstall.InstalledApp) bool {
	fmt.Printf("Uninstall %s (%s)? [y/N] ", app.Name, app.Type)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	uninstallCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without uninstalling")
	uninstallCmd.Flags().BoolVar(&uninstallAll, "all", false, "List all installed applications")
}
