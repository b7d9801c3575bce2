package uninstall

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lakshaymaurya-felt/linmole/internal/runner"
)

const dpkgQueryLine = "dpkg-query -W -f ${Package}\t${Installed-Size}\n"

func TestScanDpkgApps(t *testing.T) {
	fake := &runner.FakeRunner{Output: map[string][]byte{
		dpkgQueryLine: []byte("bash\t7964\nvim-tiny\t1700\n"),
	}}

	apps := scanDpkgApps(context.Background(), fake)
	if len(apps) != 2 {
		t.Fatalf("apps = %d, want 2", len(apps))
	}
	if apps[0].Name != "bash" || apps[0].Type != AppDeb {
		t.Errorf("first app = %+v", apps[0])
	}
	if apps[0].Size != 7964*1024 {
		t.Errorf("Size = %d, want %d (dpkg reports KiB)", apps[0].Size, 7964*1024)
	}
	if apps[1].Path != "/var/lib/dpkg/info/vim-tiny.list" {
		t.Errorf("Path = %q", apps[1].Path)
	}
}

func TestScanDpkgAppsAbsentManager(t *testing.T) {
	fake := &runner.FakeRunner{FailOn: map[string]error{
		dpkgQueryLine: os.ErrNotExist,
	}}
	if apps := scanDpkgApps(context.Background(), fake); apps != nil {
		t.Errorf("apps = %+v, want nil", apps)
	}
}

func TestScanSnapAppsSkipsHeader(t *testing.T) {
	out := "Name     Version  Rev   Tracking       Publisher   Notes\n" +
		"core22   20240111 1122  latest/stable  canonical✓  base\n" +
		"firefox  122.0    3836  latest/stable  mozilla✓    -\n"
	fake := &runner.FakeRunner{Output: map[string][]byte{"snap list": []byte(out)}}

	apps := scanSnapApps(context.Background(), fake)
	if len(apps) != 2 {
		t.Fatalf("apps = %d, want 2", len(apps))
	}
	if apps[0].Name != "core22" || apps[1].Name != "firefox" {
		t.Errorf("names = %q, %q", apps[0].Name, apps[1].Name)
	}
	if apps[1].Path != "/snap/firefox" || apps[1].Type != AppSnap {
		t.Errorf("firefox = %+v", apps[1])
	}
}

func TestScanFlatpakAppsParsesSizes(t *testing.T) {
	out := "org.gimp.GIMP\tGIMP\t340 MB\n" +
		"org.vim.Vim\tVim\n"
	fake := &runner.FakeRunner{Output: map[string][]byte{
		"flatpak list --app --columns=application,name,size": []byte(out),
	}}

	apps := scanFlatpakApps(context.Background(), fake)
	if len(apps) != 2 {
		t.Fatalf("apps = %d, want 2", len(apps))
	}
	if apps[0].ID != "org.gimp.GIMP" || apps[0].Name != "GIMP" {
		t.Errorf("first app = %+v", apps[0])
	}
	if apps[0].Size != 340*1000*1000 {
		t.Errorf("Size = %d, want 340 MB", apps[0].Size)
	}
	if apps[0].Path != "/var/lib/flatpak/app/org.gimp.GIMP" {
		t.Errorf("Path = %q", apps[0].Path)
	}
	// Older flatpak omits the size column.
	if apps[1].Name != "Vim" || apps[1].Size != 0 {
		t.Errorf("second app = %+v", apps[1])
	}
}

func TestScanAppImages(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	appDir := filepath.Join(home, "Applications")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"Obsidian.AppImage": "12345678",
		"krita.appimage":    "123",
		"notes.txt":         "not an app",
	} {
		if err := os.WriteFile(filepath.Join(appDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	apps := scanAppImages()
	if len(apps) != 2 {
		t.Fatalf("apps = %d, want 2: %+v", len(apps), apps)
	}
	if apps[0].Name != "Obsidian" || apps[0].Size != 8 || apps[0].Type != AppImage {
		t.Errorf("first app = %+v", apps[0])
	}
	if apps[1].Name != "krita" {
		t.Errorf("second app = %+v", apps[1])
	}
}

func TestScanInstalledAppsSortsByName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	fake := &runner.FakeRunner{Output: map[string][]byte{
		dpkgQueryLine: []byte("zsh\t2000\n"),
		"snap list":   []byte("Name  Version\nAardvark  1.0\n"),
	}}

	apps := ScanInstalledApps(context.Background(), fake)
	if len(apps) != 2 {
		t.Fatalf("apps = %d, want 2", len(apps))
	}
	if apps[0].Name != "Aardvark" || apps[1].Name != "zsh" {
		t.Errorf("order = %q, %q, want case-insensitive name order", apps[0].Name, apps[1].Name)
	}
}
