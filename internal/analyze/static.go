package analyze

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// staticMaxPerLevel caps entries printed per level to keep piped
// output manageable.
const staticMaxPerLevel = 20

// PrintStaticTree prints a plain-text tree view of the scan results.
// Used when stdout is not a terminal or --no-tui is set. Respects the
// depth and minSize filters.
func PrintStaticTree(w io.Writer, root *DirEntry, maxDepth int, minSize int64) {
	if root == nil {
		fmt.Fprintln(w, "  No data to display.")
		return
	}

	fmt.Fprintf(w, "  Disk usage: %s\n", root.Path)
	fmt.Fprintf(w, "  Total size: %s\n", core.FormatSize(root.Size))
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintln(w)

	printEntry(w, root, "", true, 0, maxDepth, minSize)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  Total: %s (%s entries)\n",
		core.FormatSize(root.Size), humanize.Comma(int64(countEntries(root))))
}

// printEntry recursively prints a directory entry in tree format.
// ASCII connectors (+-- \-- |) keep the output safe for pipes and
// minimal terminals.
func printEntry(w io.Writer, entry *DirEntry, prefix string, isLast bool, depth int, maxDepth int, minSize int64) {
	if entry == nil {
		return
	}

	// Depth limit (0 = unlimited).
	if maxDepth > 0 && depth > maxDepth {
		return
	}

	if minSize > 0 && entry.Size < minSize {
		return
	}

	connector := "+-- "
	childPrefix := "|   "
	if isLast {
		connector = "\\-- "
		childPrefix = "    "
	}

	// Root has no connector.
	if depth == 0 {
		connector = ""
		childPrefix = ""
	}

	sizeStr := core.FormatSize(entry.Size)
	dirMarker := ""
	if entry.IsDir {
		dirMarker = "/"
	}

	fmt.Fprintf(w, "  %s%s%s%s  %s\n", prefix, connector, entry.Name, dirMarker, sizeStr)

	if entry.IsDir && len(entry.Children) > 0 {
		// Sort children by size descending.
		children := make([]*DirEntry, len(entry.Children))
		copy(children, entry.Children)
		sort.Slice(children, func(i, j int) bool {
			return children[i].Size > children[j].Size
		})

		if len(children) > staticMaxPerLevel {
			shown := children[:staticMaxPerLevel]
			for i, child := range shown {
				printEntry(w, child, prefix+childPrefix, i == len(shown)-1, depth+1, maxDepth, minSize)
			}
			remaining := len(children) - staticMaxPerLevel
			fmt.Fprintf(w, "  %s%s... and %d more entries\n", prefix+childPrefix, "\\-- ", remaining)
		} else {
			for i, child := range children {
				printEntry(w, child, prefix+childPrefix, i == len(children)-1, depth+1, maxDepth, minSize)
			}
		}
	}
}

func countEntries(root *DirEntry) int {
	count := 1
	for _, c := range root.Children {
		count += countEntries(c)
	}
	return count
}
