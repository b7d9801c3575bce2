package clean

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

// Options control one clean run.
type Options struct {
	Categories []string             // target categories to include; empty means all
	Targets    []config.CleanTarget // overrides the built-in tables when set
	DryRun     bool
	Elevated   bool
	Journal    *history.Journal // optional; outcomes are journaled when set
	Out        io.Writer        // defaults to os.Stdout
}

// Run scans the configured cleanup targets, prints the plan, and
// unless dry-run deletes their contents through the executor. Returns
// the bytes freed (or that would be freed).
func Run(exec *core.Executor, wl *whitelist.Whitelist, opts Options) (int64, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := logging.L()

	fmt.Fprintln(out, ui.TitleStyle().Render("LinMole Clean"))
	fmt.Fprintln(out, strings.Repeat("═", 50))
	fmt.Fprintln(out)

	fmt.Fprintln(out, ui.MutedStyle().Render("Scanning cache directories..."))
	targets := opts.Targets
	if targets == nil {
		targets = selectTargets(opts.Categories)
	}
	results := ScanTargets(targets, wl, opts.Elevated)
	if opts.Targets == nil && includesCategory(opts.Categories, "user") {
		results = append(results, ScanRemovableMedia(wl)...)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, ui.WarningStyle().Render("No caches found to clean."))
		return 0, nil
	}

	var totalSize int64
	for _, r := range results {
		totalSize += r.Size
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.TitleStyle().Render("Found cleanup targets:"))
	fmt.Fprintln(out)

	for _, r := range results {
		sudoMarker := ""
		if r.RequiresRoot {
			sudoMarker = ui.MutedStyle().Render(" [sudo]")
		}
		row := fmt.Sprintf("  %s %s %s%s",
			ui.SuccessStyle().Render(ui.IconCheck),
			r.Name,
			ui.FormatSize(r.Size),
			sudoMarker,
		)
		if log.IsLevelEnabled(logrus.DebugLevel) {
			row += ui.MutedStyle().Render(" " + strings.Join(r.Dirs, " "))
		}
		fmt.Fprintln(out, row)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", "Total space to free",
		ui.SuccessStyle().Render(ui.FormatSize(totalSize)))
	fmt.Fprintln(out)

	if opts.DryRun {
		wouldFree := cleanAll(exec, results, opts, out, true)
		fmt.Fprintln(out, ui.WarningStyle().Render("[DRY RUN] No files were deleted."))
		return wouldFree, nil
	}

	fmt.Fprintln(out, ui.MutedStyle().Render("Cleaning..."))
	freed := cleanAll(exec, results, opts, out, false)

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("═", 50))
	fmt.Fprintf(out, "%s: %s\n", "Space freed",
		ui.SuccessStyle().Render(ui.FormatSize(freed)))

	if home, err := os.UserHomeDir(); err == nil {
		if free, _, err := core.DiskFree(home); err == nil {
			fmt.Fprintf(out, "%s\n", ui.MutedStyle().Render(
				fmt.Sprintf("Free space now: %s", ui.FormatSize(free))))
		}
	}

	return freed, nil
}

// cleanAll runs the executor over every scanned directory. Failures
// are reported and skipped; the rest of the run continues.
func cleanAll(exec *core.Executor, results []TargetResult, opts Options, out io.Writer, dryRun bool) int64 {
	log := logging.L()
	var freed int64

	for _, r := range results {
		var targetFreed int64
		var firstErr error

		for _, dir := range r.Dirs {
			n, err := exec.CleanDirectory(dir, dryRun)
			targetFreed += n
			if err != nil && firstErr == nil {
				firstErr = err
			}
			journalRecord(opts.Journal, history.Record{
				Tool:     "clean",
				Category: r.Category,
				Path:     dir,
				Freed:    n,
				DryRun:   dryRun,
				Outcome:  outcomeFor(err),
				Error:    errString(err),
			})
		}
		freed += targetFreed

		if dryRun {
			continue
		}
		if firstErr != nil {
			fmt.Fprintf(out, "  %s Failed %s: %v\n",
				ui.ErrorStyle().Render(ui.IconError), r.Name, firstErr)
			log.WithField("target", r.Name).Warnf("clean failed: %v", firstErr)
		} else {
			fmt.Fprintf(out, "  %s Cleaned %s\n",
				ui.SuccessStyle().Render(ui.IconCheck), r.Name)
		}
	}

	return freed
}

func selectTargets(categories []string) []config.CleanTarget {
	if len(categories) == 0 {
		return config.GetCleanTargets()
	}
	var targets []config.CleanTarget
	for _, cat := range categories {
		targets = append(targets, config.GetTargetsByCategory(cat)...)
	}
	return targets
}

func includesCategory(categories []string, cat string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c == cat {
			return true
		}
	}
	return false
}

func journalRecord(j *history.Journal, r history.Record) {
	if j == nil {
		return
	}
	if err := j.Record(r); err != nil {
		logging.L().Debugf("journal write failed: %v", err)
	}
}

func outcomeFor(err error) string {
	if err != nil {
		return history.OutcomeFailed
	}
	return history.OutcomeDeleted
}

func errString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
