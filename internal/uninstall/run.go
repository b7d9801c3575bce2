package uninstall

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

// Options control one uninstall run.
type Options struct {
	Name    string // app to uninstall; empty with List=false prints usage
	List    bool   // list installed apps instead of uninstalling
	DryRun  bool
	Confirm func(app InstalledApp) bool // nil means always proceed
	Journal *history.Journal
	Out     io.Writer
}

// listGroupLimit caps apps shown per type in list mode.
const listGroupLimit = 10

// Run drives the uninstall command: list mode, targeted uninstall
// with leftover removal, or usage help.
func Run(ctx context.Context, r runner.Runner, exec *core.Executor, opts Options) (int64, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, ui.TitleStyle().Render("LinMole Uninstall"))
	fmt.Fprintln(out, strings.Repeat("═", 50))
	fmt.Fprintln(out)

	if opts.List {
		listApps(ctx, r, out)
		return 0, nil
	}

	if opts.Name == "" {
		printUsage(out)
		return 0, nil
	}

	fmt.Fprintf(out, "Searching for %s...\n", ui.WarningStyle().Render("'"+opts.Name+"'"))

	apps := ScanInstalledApps(ctx, r)
	var matching []InstalledApp
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), strings.ToLower(opts.Name)) {
			matching = append(matching, app)
		}
	}

	if len(matching) == 0 {
		fmt.Fprintln(out, ui.WarningStyle().Render("No matching applications found."))
		return 0, nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Found %d matching apps:\n", len(matching))

	var totalFreed int64
	for _, app := range matching {
		totalFreed += uninstallOne(ctx, r, exec, app, opts, out)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("═", 50))
	if opts.DryRun {
		fmt.Fprintf(out, "Would free: %s (dry-run)\n",
			ui.SuccessStyle().Render(ui.FormatSize(totalFreed)))
	} else {
		fmt.Fprintf(out, "Space freed: %s\n",
			ui.SuccessStyle().Render(ui.FormatSize(totalFreed)))
	}

	return totalFreed, nil
}

// uninstallOne removes a single app and its leftovers, returning the
// bytes freed (or promised, in dry-run).
func uninstallOne(ctx context.Context, r runner.Runner, exec *core.Executor, app InstalledApp, opts Options, out io.Writer) int64 {
	log := logging.L()
	var freed int64

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Uninstalling %s (%s)...\n", app.Name, ui.MutedStyle().Render(app.Type.String()))

	if opts.Confirm != nil && !opts.Confirm(app) {
		fmt.Fprintf(out, "  %s Skipped\n", ui.MutedStyle().Render("→"))
		return 0
	}

	if opts.DryRun {
		fmt.Fprintf(out, "  %s Would remove app\n", ui.TitleStyle().Render("→"))
		freed += app.Size
	} else {
		if err := UninstallApp(ctx, r, exec, app); err != nil {
			fmt.Fprintf(out, "  %s Failed: %v\n", ui.ErrorStyle().Render(ui.IconError), err)
			log.WithField("app", app.Name).Warnf("uninstall failed: %v", err)
			journalApp(opts.Journal, app, 0, opts.DryRun, err)
		} else {
			fmt.Fprintf(out, "  %s Removed app\n", ui.SuccessStyle().Render(ui.IconCheck))
			freed += app.Size
			journalApp(opts.Journal, app, app.Size, opts.DryRun, nil)
		}
	}

	freed += removeLeftovers(exec, app, opts, out)
	return freed
}

// removeLeftovers deletes (or previews) everything FindLeftovers
// turns up. Refusals on protected system locations are expected and
// reported per path.
func removeLeftovers(exec *core.Executor, app InstalledApp, opts Options, out io.Writer) int64 {
	leftovers := FindLeftovers(app.Name)
	if len(leftovers) == 0 {
		return 0
	}

	fmt.Fprintf(out, "  %s Found %d leftover locations\n",
		ui.TitleStyle().Render("→"), len(leftovers))

	log := logging.L()
	var freed int64
	for _, leftover := range leftovers {
		if opts.DryRun {
			fmt.Fprintf(out, "    %s Would remove %s (%s)\n",
				ui.MutedStyle().Render("→"), leftover.Path,
				ui.WarningStyle().Render(ui.FormatSize(leftover.Size)))
			freed += leftover.Size
			continue
		}

		n, err := exec.SafeDelete(leftover.Path, false)
		if err != nil {
			fmt.Fprintf(out, "    %s Failed %s: %v\n",
				ui.ErrorStyle().Render(ui.IconError), leftover.Path, err)
			log.WithField("path", leftover.Path).Debugf("leftover removal refused: %v", err)
			continue
		}
		fmt.Fprintf(out, "    %s Removed %s (%s)\n",
			ui.SuccessStyle().Render(ui.IconCheck), leftover.Path, ui.FormatSize(n))
		freed += n

		journalLeftover(opts.Journal, leftover, n)
	}
	return freed
}

func listApps(ctx context.Context, r runner.Runner, out io.Writer) {
	fmt.Fprintln(out, ui.MutedStyle().Render("Scanning installed applications..."))

	apps := ScanInstalledApps(ctx, r)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Found %s installed packages:\n", humanize.Comma(int64(len(apps))))
	fmt.Fprintln(out)

	byType := make(map[string][]InstalledApp)
	for _, app := range apps {
		key := app.Type.String()
		byType[key] = append(byType[key], app)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		group := byType[t]
		fmt.Fprintf(out, "  %s (%d):\n", ui.TitleStyle().Render(t), len(group))
		for i, app := range group {
			if i == listGroupLimit {
				fmt.Fprintf(out, "    ... and %d more\n", len(group)-listGroupLimit)
				break
			}
			fmt.Fprintf(out, "    %s %s %s\n",
				ui.MutedStyle().Render(ui.IconBullet), app.Name,
				ui.MutedStyle().Render(ui.FormatSize(app.Size)))
		}
		fmt.Fprintln(out)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, ui.TitleStyle().Render("Usage:"))
	fmt.Fprintln(out, "  lm uninstall <app-name>        Uninstall an app")
	fmt.Fprintln(out, "  lm uninstall --all             List installed apps")
	fmt.Fprintln(out, "  lm uninstall <name> --dry-run  Preview uninstall")
}

func journalApp(j *history.Journal, app InstalledApp, freed int64, dryRun bool, err error) {
	if j == nil {
		return
	}
	rec := history.Record{
		Tool: "uninstall", Category: app.Type.String(), Path: app.Path,
		Freed: freed, DryRun: dryRun, Outcome: history.OutcomeDeleted,
	}
	if err != nil {
		rec.Outcome = history.OutcomeFailed
		rec.Error = err.Error()
	}
	if jerr := j.Record(rec); jerr != nil {
		logging.L().Debugf("journal write failed: %v", jerr)
	}
}

func journalLeftover(j *history.Journal, leftover LeftoverFile, freed int64) {
	if j == nil {
		return
	}
	rec := history.Record{
		Tool: "uninstall", Category: "leftover:" + leftover.Type.String(),
		Path: leftover.Path, Freed: freed, Outcome: history.OutcomeDeleted,
	}
	if err := j.Record(rec); err != nil {
		logging.L().Debugf("journal write failed: %v", err)
	}
}
