package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/menu"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

var (
	// Global flags
	debug  bool
	dryRun bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "lm",
	Short: "Deep clean and optimize your Linux",
	Long: `LinMole - Deep clean and optimize your Linux.

All-in-one toolkit for system cleanup, disk analysis, project
artifact purging, app uninstallation, maintenance tasks, and
live monitoring.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// When invoked without subcommand, show interactive menu
		return runInteractiveMenu()
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return exitcodes.ForError(err)
	}
	return exitcodes.Success
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitcodes.UsageError{Err: err}
	})

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// runInteractiveMenu launches the full-screen main menu and dispatches
// the selection once the alternate screen is torn down, so the chosen
// command draws on a restored terminal.
func runInteractiveMenu() error {
	if !ui.IsInteractive(os.Stdout) || !ui.IsInteractive(os.Stdin) {
		fmt.Println("LinMole - Deep clean and optimize your Linux.")
		fmt.Println("Run 'lm --help' for available commands.")
		fmt.Println()
		fmt.Printf("Version %s (%s) built %s\n", appVersion, appCommit, appDate)
		return nil
	}

	p := tea.NewProgram(menu.NewMenuModel(), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	switch final.(menu.MenuModel).Action() {
	case menu.ActionClean:
		return cleanCmd.RunE(cleanCmd, nil)
	case menu.ActionAnalyze:
		return analyzeCmd.RunE(analyzeCmd, nil)
	case menu.ActionStatus:
		return statusCmd.RunE(statusCmd, nil)
	case menu.ActionPurge:
		return purgeCmd.RunE(purgeCmd, nil)
	case menu.ActionOptimize:
		return optimizeCmd.RunE(optimizeCmd, nil)
	}
	return nil
}
