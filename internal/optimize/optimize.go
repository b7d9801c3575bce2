// Package optimize runs one-shot system maintenance tasks: thumbnail
// cache reset, font cache rebuild, package cache cleanup, orphan
// removal, and journal vacuuming.
package optimize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/distro"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

// Task is one maintenance step. Either Command or Action is set;
// tasks run independently and one failure never stops the rest.
type Task struct {
	Name         string
	Description  string
	RequiresRoot bool
	Command      []string
	Action       func(ctx context.Context) (int64, error)
}

// Deps carries what the task table needs.
type Deps struct {
	Exec       *core.Executor
	Runner     runner.Runner
	PkgManager distro.PackageManager
	JournalMax string // journalctl vacuum size, e.g. "100M"
}

// Options control one optimize run.
type Options struct {
	DryRun   bool
	Elevated bool
	Journal  *history.Journal
	Out      io.Writer
}

// Tasks builds the maintenance task table for the detected system.
// Package-manager tasks are omitted when the manager has no suitable
// command.
func Tasks(deps Deps) []Task {
	tasks := []Task{
		{
			Name:        "Clear thumbnail cache",
			Description: "Remove cached thumbnails",
			Action: func(ctx context.Context) (int64, error) {
				return clearThumbnails(deps.Exec)
			},
		},
		{
			Name:        "Update font cache",
			Description: "Rebuild font cache",
			Command:     []string{"fc-cache", "-f"},
		},
	}

	if cmd := deps.PkgManager.CleanCacheCmd(); cmd != nil {
		tasks = append(tasks, Task{
			Name:         "Clear package cache",
			Description:  fmt.Sprintf("Remove downloaded package files (%s)", deps.PkgManager),
			RequiresRoot: true,
			Command:      cmd,
		})
	}
	if cmd := deps.PkgManager.AutoremoveCmd(); cmd != nil {
		tasks = append(tasks, Task{
			Name:         "Remove orphan packages",
			Description:  "Remove unused dependencies",
			RequiresRoot: true,
			Command:      cmd,
		})
	}

	max := deps.JournalMax
	if max == "" {
		max = "100M"
	}
	tasks = append(tasks, Task{
		Name:         "Vacuum journal logs",
		Description:  "Limit journal size to " + max,
		RequiresRoot: true,
		Command:      []string{"journalctl", "--vacuum-size=" + max},
	})

	return tasks
}

// clearThumbnails empties ~/.cache/thumbnails through the executor so
// the usual validation applies.
func clearThumbnails(exec *core.Executor) (int64, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return 0, err
	}
	dir := filepath.Join(home, ".cache", "thumbnails")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	return exec.CleanDirectory(dir, false)
}

// Run lists the applicable tasks and executes them unless dry-run.
func Run(ctx context.Context, deps Deps, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := logging.L()

	fmt.Fprintln(out, ui.TitleStyle().Render("LinMole System Optimize"))
	fmt.Fprintln(out, strings.Repeat("═", 50))
	fmt.Fprintln(out)

	var available []Task
	for _, t := range Tasks(deps) {
		if t.RequiresRoot && !opts.Elevated {
			continue
		}
		available = append(available, t)
	}

	if len(available) == 0 {
		fmt.Fprintln(out, ui.WarningStyle().Render("No optimization tasks available."))
		fmt.Fprintln(out, ui.MutedStyle().Render("Run with sudo for system-level optimizations."))
		return nil
	}

	fmt.Fprintln(out, ui.TitleStyle().Render("Optimization tasks:"))
	fmt.Fprintln(out)
	for _, t := range available {
		sudoMarker := ""
		if t.RequiresRoot {
			sudoMarker = ui.MutedStyle().Render(" [sudo]")
		}
		fmt.Fprintf(out, "  %s %s%s\n", ui.TitleStyle().Render("→"), t.Name, sudoMarker)
		fmt.Fprintf(out, "    %s\n", ui.MutedStyle().Render(t.Description))
	}
	fmt.Fprintln(out)

	if opts.DryRun {
		fmt.Fprintln(out, ui.WarningStyle().Render("[DRY RUN] No changes were made."))
		return nil
	}

	fmt.Fprintln(out, ui.MutedStyle().Render("Running optimizations..."))
	fmt.Fprintln(out)

	for _, t := range available {
		fmt.Fprintf(out, "  %s %s... ", ui.TitleStyle().Render("→"), t.Name)

		freed, err := runTask(ctx, deps, t)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", ui.ErrorStyle().Render("failed:"), err)
			log.WithField("task", t.Name).Warnf("optimize task failed: %v", err)
		} else {
			fmt.Fprintln(out, ui.SuccessStyle().Render("done"))
		}

		if opts.Journal != nil && freed > 0 {
			rec := history.Record{
				Tool: "optimize", Category: "system", Path: t.Name,
				Freed: freed, Outcome: history.OutcomeDeleted,
			}
			if jerr := opts.Journal.Record(rec); jerr != nil {
				log.Debugf("journal write failed: %v", jerr)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("═", 50))
	fmt.Fprintln(out, ui.SuccessStyle().Render("System optimization completed."))

	if !opts.Elevated {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.MutedStyle().Render("Tip: Run with sudo for additional optimizations."))
	}

	return nil
}

func runTask(ctx context.Context, deps Deps, t Task) (int64, error) {
	if t.Action != nil {
		return t.Action(ctx)
	}
	if len(t.Command) > 0 {
		_, err := deps.Runner.Run(ctx, t.Command[0], t.Command[1:]...)
		return 0, err
	}
	return 0, nil
}
