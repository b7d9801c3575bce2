// Package purge finds and removes build artifacts in project trees:
// node_modules, target, venvs, and friends.
package purge

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// maxScanDepth bounds the walk below each project root. Artifacts
// live near the top of a project; going deeper mostly finds vendored
// copies.
const maxScanDepth = 4

// ArtifactPattern matches one build-artifact directory name, guarded
// by marker files that must sit next to it in the project.
type ArtifactPattern struct {
	Name    string
	DirName string
	Markers []string // empty means no marker required
}

// ArtifactPatterns returns the recognized build artifact kinds.
func ArtifactPatterns() []ArtifactPattern {
	return []ArtifactPattern{
		{Name: "Node.js", DirName: "node_modules", Markers: []string{"package.json"}},
		{Name: "Rust", DirName: "target", Markers: []string{"Cargo.toml"}},
		{Name: "Python venv", DirName: "venv", Markers: []string{"requirements.txt", "setup.py", "pyproject.toml"}},
		{Name: "Python .venv", DirName: ".venv", Markers: []string{"requirements.txt", "setup.py", "pyproject.toml"}},
		{Name: "Python cache", DirName: "__pycache__", Markers: nil},
		{Name: "Gradle", DirName: "build", Markers: []string{"build.gradle", "build.gradle.kts"}},
		{Name: "Maven", DirName: "target", Markers: []string{"pom.xml"}},
		{Name: "Next.js", DirName: ".next", Markers: []string{"next.config.js", "next.config.mjs"}},
		{Name: "Nuxt", DirName: ".nuxt", Markers: []string{"nuxt.config.js", "nuxt.config.ts"}},
	}
}

// FoundArtifact is one matched artifact directory.
type FoundArtifact struct {
	Project  string // parent directory name
	Type     string // pattern name
	Path     string
	Size     int64
	AgeDays  int
	Selected bool
}

// ScanArtifacts walks each project root up to maxScanDepth looking
// for artifact directories whose parent carries a marker file.
// Artifacts older than minAgeDays are pre-selected. Matched
// directories are not descended into, so nested copies are counted
// once through their parent.
func ScanArtifacts(roots []string, minAgeDays int) []FoundArtifact {
	patterns := ArtifactPatterns()
	var artifacts []FoundArtifact

	for _, root := range roots {
		root = filepath.Clean(root)
		if _, err := os.Stat(root); err != nil {
			continue
		}

		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if depthBelow(root, path) > maxScanDepth {
				return fs.SkipDir
			}
			if path == root {
				return nil
			}

			pattern, ok := matchPattern(patterns, path)
			if !ok {
				return nil
			}

			parent := filepath.Dir(path)
			age := ageDays(path)
			artifacts = append(artifacts, FoundArtifact{
				Project:  filepath.Base(parent),
				Type:     pattern.Name,
				Path:     path,
				Size:     core.DirSize(path),
				AgeDays:  age,
				Selected: age > minAgeDays,
			})
			return fs.SkipDir
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Size > artifacts[j].Size
	})

	return artifacts
}

// matchPattern reports whether path's base name is an artifact dir
// with a satisfied marker requirement.
func matchPattern(patterns []ArtifactPattern, path string) (ArtifactPattern, bool) {
	base := filepath.Base(path)
	parent := filepath.Dir(path)

	for _, p := range patterns {
		if base != p.DirName {
			continue
		}
		if len(p.Markers) == 0 {
			return p, true
		}
		for _, marker := range p.Markers {
			if _, err := os.Stat(filepath.Join(parent, marker)); err == nil {
				return p, true
			}
		}
	}
	return ArtifactPattern{}, false
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func ageDays(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(time.Since(info.ModTime()).Hours() / 24)
}
