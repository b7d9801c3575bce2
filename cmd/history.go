package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent deletions",
	Long:  "Show the deletion journal: what was removed, when, and how much space it freed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := history.Open(history.DefaultPath())
		if err != nil {
			return err
		}
		defer j.Close()

		records, err := j.Recent(historyLimit)
		if err != nil {
			return err
		}

		fmt.Println(ui.TitleStyle().Render("LinMole History"))
		fmt.Println(strings.Repeat("═", 50))

		if len(records) == 0 {
			fmt.Println("No deletions recorded yet.")
			return nil
		}

		fmt.Println()
		for _, r := range records {
			icon := ui.SuccessStyle().Render(ui.IconCheck)
			switch r.Outcome {
			case history.OutcomeFailed:
				icon = ui.ErrorStyle().Render(ui.IconError)
			case history.OutcomeSkipped:
				icon = ui.MutedStyle().Render(ui.IconBullet)
			}
			tag := ""
			if r.DryRun {
				tag = ui.MutedStyle().Render(" (dry-run)")
			}
			fmt.Printf("  %s %s  %-9s %s  %s%s\n",
				icon,
				r.Timestamp.Format("2006-01-02 15:04"),
				r.Tool,
				ui.MutedStyle().Render(ui.FormatSize(r.Freed)),
				r.Path,
				tag)
		}

		total, err := j.TotalFreed()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(strings.Repeat("═", 50))
		fmt.Printf("Total freed: %s\n", ui.SuccessStyle().Render(ui.FormatSize(total)))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to show")
}
