package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/linmole/internal/status"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

var (
	statusRefresh int
	statusJSON    bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Monitor system health",
	Long:  "Real-time dashboard with CPU, memory, disk, network, and process metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusJSON {
			met, err := status.CollectMetrics(nil, 0)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(met, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if !ui.IsInteractive(os.Stdout) {
			met, err := status.CollectMetrics(nil, 0)
			if err != nil {
				return err
			}
			fmt.Print(status.RenderStatic(met))
			return nil
		}

		m := status.NewStatusModel(time.Duration(statusRefresh) * time.Second)
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusRefresh, "refresh", 1, "Refresh interval in seconds")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output one metrics snapshot as JSON")
}
