package purge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

// Options control one purge run.
type Options struct {
	Paths      []string // project roots to scan
	MinAgeDays int      // artifacts at most this old stay unselected
	MinSize    int64    // artifacts below this size are not shown
	DryRun     bool
	Journal    *history.Journal
	Out        io.Writer
}

// ParseMinSize converts a human size like "50MB" or "1.5GiB" to
// bytes. Empty input means no minimum.
func ParseMinSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}

// Run scans the project roots and removes selected artifacts through
// the executor. Returns bytes freed (or reported, when dry-run).
func Run(exec *core.Executor, opts Options) (int64, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, ui.TitleStyle().Render("LinMole Project Purge"))
	fmt.Fprintln(out, strings.Repeat("═", 60))
	fmt.Fprintln(out)

	fmt.Fprintln(out, ui.MutedStyle().Render("Scanning for development artifacts..."))
	fmt.Fprintln(out)

	artifacts := ScanArtifacts(opts.Paths, opts.MinAgeDays)
	if opts.MinSize > 0 {
		filtered := artifacts[:0]
		for _, a := range artifacts {
			if a.Size >= opts.MinSize {
				filtered = append(filtered, a)
			}
		}
		artifacts = filtered
	}

	if len(artifacts) == 0 {
		fmt.Fprintln(out, ui.WarningStyle().Render("No development artifacts found."))
		return 0, nil
	}

	var selectedSize int64
	selectedCount := 0
	for _, a := range artifacts {
		if a.Selected {
			selectedSize += a.Size
			selectedCount++
		}
	}

	fmt.Fprintln(out, ui.TitleStyle().Render("Found artifacts:"))
	fmt.Fprintln(out)
	for _, a := range artifacts {
		fmt.Fprintln(out, renderArtifactRow(a))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Selected: %s artifacts, %s\n",
		humanize.Comma(int64(selectedCount)),
		ui.SuccessStyle().Render(ui.FormatSize(selectedSize)))
	fmt.Fprintln(out)

	if opts.DryRun {
		fmt.Fprintln(out, ui.WarningStyle().Render("[DRY RUN] No files were deleted."))
		return selectedSize, nil
	}

	fmt.Fprintln(out, ui.MutedStyle().Render("Cleaning selected artifacts..."))

	log := logging.L()
	var freed int64
	for _, a := range artifacts {
		if !a.Selected {
			continue
		}

		n, err := exec.SafeDelete(a.Path, false)
		if err != nil {
			fmt.Fprintf(out, "  %s Failed %s: %v\n",
				ui.ErrorStyle().Render(ui.IconError), a.Project, err)
			log.WithField("path", a.Path).Warnf("purge failed: %v", err)
		} else {
			freed += n
			fmt.Fprintf(out, "  %s Removed %s\n",
				ui.SuccessStyle().Render(ui.IconCheck), a.Project)
		}

		if opts.Journal != nil {
			outcome := history.OutcomeDeleted
			if err != nil {
				outcome = history.OutcomeFailed
			}
			rec := history.Record{
				Tool: "purge", Category: "dev", Path: a.Path,
				Freed: n, Outcome: outcome,
			}
			if err != nil {
				rec.Error = err.Error()
			}
			if jerr := opts.Journal.Record(rec); jerr != nil {
				log.Debugf("journal write failed: %v", jerr)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("═", 60))
	fmt.Fprintf(out, "%s: %s\n", "Space freed",
		ui.SuccessStyle().Render(ui.FormatSize(freed)))

	return freed, nil
}

func renderArtifactRow(a FoundArtifact) string {
	marker := ui.MutedStyle().Render("○")
	if a.Selected {
		marker = ui.SuccessStyle().Render("●")
	}

	var age string
	switch a.AgeDays {
	case 0:
		age = "Today"
	case 1:
		age = "1 day"
	default:
		age = fmt.Sprintf("%d days", a.AgeDays)
	}
	if a.AgeDays < 7 {
		age = ui.WarningStyle().Render(age)
	} else {
		age = ui.MutedStyle().Render(age)
	}

	return fmt.Sprintf(" %s %-20s %10s %s %s %s %s",
		marker,
		a.Project,
		ui.FormatSize(a.Size),
		ui.MutedStyle().Render(ui.IconPipe),
		ui.MutedStyle().Render(a.Type),
		ui.MutedStyle().Render(ui.IconPipe),
		age,
	)
}
