package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/analyze"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/exitcodes"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

var (
	analyzeDepth   int
	analyzeMinSize string
	analyzeExclude []string
	analyzeNoTUI   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Explore disk usage",
	Long:  "Interactive disk space analyzer with visual tree view.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = home
		}

		var minSize int64
		if analyzeMinSize != "" {
			n, err := humanize.ParseBytes(analyzeMinSize)
			if err != nil {
				return &exitcodes.UsageError{Err: fmt.Errorf("invalid --min-size %q: %w", analyzeMinSize, err)}
			}
			minSize = int64(n)
		}

		scanner := analyze.NewScanner(0, analyzeExclude)

		if analyzeNoTUI || !ui.IsInteractive(os.Stdout) {
			root, err := scanner.Scan(path)
			if err != nil {
				return err
			}
			analyze.PrintStaticTree(os.Stdout, root, analyzeDepth, minSize)
			return nil
		}

		wl := whitelist.Load()
		exec := core.NewExecutor(core.NewValidator(wl, core.IsRoot()), &fsops.OSDeleter{})

		m := analyze.NewAnalyzeModel(exec, scanner, path, analyzeDepth, minSize)
		p := tea.NewProgram(m, tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return err
		}

		fm := final.(analyze.AnalyzeModel)
		if err := fm.Err(); err != nil {
			return err
		}
		if freed := fm.FreedTotal(); freed > 0 {
			fmt.Printf("%s Freed %s\n", ui.SuccessStyle().Render(ui.IconCheck), ui.FormatSize(freed))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDepth, "depth", 0, "Maximum directory depth to display")
	analyzeCmd.Flags().StringVar(&analyzeMinSize, "min-size", "", "Minimum size to display (e.g., 100MB)")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "Name globs to exclude from the scan")
	analyzeCmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "Print a static tree instead of the interactive view")
}
