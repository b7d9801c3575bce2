// Package uninstall removes installed applications and hunts down the
// config, cache, and data files they leave behind.
package uninstall

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/runner"
)

// AppType says how an application was installed.
type AppType int

const (
	AppDeb AppType = iota
	AppSnap
	AppFlatpak
	AppImage
	AppManual
)

func (t AppType) String() string {
	switch t {
	case AppDeb:
		return "deb"
	case AppSnap:
		return "snap"
	case AppFlatpak:
		return "flatpak"
	case AppImage:
		return "AppImage"
	default:
		return "manual"
	}
}

// InstalledApp is one discovered application.
type InstalledApp struct {
	Name string
	ID   string // package/app identifier used for removal
	Path string
	Size int64
	Type AppType
}

// ─── Inventory Scans ─────────────────────────────────────────────────────────

// ScanInstalledApps inventories dpkg, snap, flatpak, and AppImage
// installations. Absent package managers contribute nothing; their
// probe failures are swallowed.
func ScanInstalledApps(ctx context.Context, r runner.Runner) []InstalledApp {
	var apps []InstalledApp
	apps = append(apps, scanDpkgApps(ctx, r)...)
	apps = append(apps, scanSnapApps(ctx, r)...)
	apps = append(apps, scanFlatpakApps(ctx, r)...)
	apps = append(apps, scanAppImages()...)

	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps
}

func scanDpkgApps(ctx context.Context, r runner.Runner) []InstalledApp {
	output, err := r.Run(ctx, "dpkg-query", "-W", "-f", "${Package}\t${Installed-Size}\n")
	if err != nil {
		return nil
	}

	var apps []InstalledApp
	for _, line := range strings.Split(string(output), "\n") {
		name, sizeField, ok := strings.Cut(line, "\t")
		if !ok || name == "" {
			continue
		}
		sizeKiB, _ := strconv.ParseInt(strings.TrimSpace(sizeField), 10, 64)

		apps = append(apps, InstalledApp{
			Name: name,
			ID:   name,
			Path: filepath.Join("/var/lib/dpkg/info", name+".list"),
			Size: sizeKiB * 1024, // dpkg reports KiB
			Type: AppDeb,
		})
	}
	return apps
}

func scanSnapApps(ctx context.Context, r runner.Runner) []InstalledApp {
	output, err := r.Run(ctx, "snap", "list")
	if err != nil {
		return nil
	}

	var apps []InstalledApp
	for i, line := range strings.Split(string(output), "\n") {
		if i == 0 {
			continue // header row
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		snapPath := filepath.Join("/snap", name)

		apps = append(apps, InstalledApp{
			Name: name,
			ID:   name,
			Path: snapPath,
			Size: core.DirSize(snapPath),
			Type: AppSnap,
		})
	}
	return apps
}

func scanFlatpakApps(ctx context.Context, r runner.Runner) []InstalledApp {
	output, err := r.Run(ctx, "flatpak", "list", "--app", "--columns=application,name,size")
	if err != nil {
		return nil
	}

	var apps []InstalledApp
	for _, line := range strings.Split(string(output), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		appID := parts[0]
		name := parts[1]

		var size int64
		if len(parts) >= 3 {
			if n, err := humanize.ParseBytes(strings.TrimSpace(parts[2])); err == nil {
				size = int64(n)
			}
		}

		apps = append(apps, InstalledApp{
			Name: name,
			ID:   appID,
			Path: filepath.Join("/var/lib/flatpak/app", appID),
			Size: size,
			Type: AppFlatpak,
		})
	}
	return apps
}

// appImageDirs are the usual drop locations for AppImage files.
func appImageDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, "Applications"),
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, "Downloads"),
	}
}

func scanAppImages() []InstalledApp {
	var apps []InstalledApp
	for _, dir := range appImageDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".appimage") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			apps = append(apps, InstalledApp{
				Name: name,
				ID:   name,
				Path: filepath.Join(dir, entry.Name()),
				Size: info.Size(),
				Type: AppImage,
			})
		}
	}
	return apps
}
