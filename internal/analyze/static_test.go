package analyze

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func staticTree() *DirEntry {
	root := &DirEntry{Name: "projects", Path: "/home/u/projects", IsDir: true, Size: 1536}
	sub := &DirEntry{Name: "app", IsDir: true, Size: 1024, Parent: root}
	sub.Children = []*DirEntry{
		{Name: "main.go", Size: 1024, Parent: sub},
	}
	root.Children = []*DirEntry{
		sub,
		{Name: "notes.txt", Size: 512, Parent: root},
	}
	return root
}

func TestPrintStaticTree(t *testing.T) {
	var buf bytes.Buffer
	PrintStaticTree(&buf, staticTree(), 0, 0)
	out := buf.String()

	for _, want := range []string{
		"Disk usage: /home/u/projects",
		"Total size: 1.5 KiB",
		"app/",
		"+-- app/",
		"\\-- notes.txt",
		"\\-- main.go",
		"Total: 1.5 KiB (4 entries)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestPrintStaticTreeDepthLimit(t *testing.T) {
	var buf bytes.Buffer
	PrintStaticTree(&buf, staticTree(), 1, 0)
	out := buf.String()

	if !strings.Contains(out, "app/") {
		t.Error("first level missing")
	}
	if strings.Contains(out, "main.go") {
		t.Error("depth 2 entry printed with --depth 1")
	}
}

func TestPrintStaticTreeMinSize(t *testing.T) {
	var buf bytes.Buffer
	PrintStaticTree(&buf, staticTree(), 0, 1024)
	out := buf.String()

	if strings.Contains(out, "notes.txt") {
		t.Error("entry below min size printed")
	}
	if !strings.Contains(out, "app/") {
		t.Error("entry above min size missing")
	}
}

func TestPrintStaticTreeCapsWideLevels(t *testing.T) {
	root := &DirEntry{Name: "root", Path: "/r", IsDir: true}
	for i := 0; i < staticMaxPerLevel+5; i++ {
		root.Children = append(root.Children, &DirEntry{
			Name: fmt.Sprintf("f%02d", i), Size: int64(i + 1), Parent: root,
		})
	}

	var buf bytes.Buffer
	PrintStaticTree(&buf, root, 0, 0)

	if !strings.Contains(buf.String(), "... and 5 more entries") {
		t.Errorf("per-level cap marker missing:\n%s", buf.String())
	}
}

func TestPrintStaticTreeNilRoot(t *testing.T) {
	var buf bytes.Buffer
	PrintStaticTree(&buf, nil, 0, 0)
	if !strings.Contains(buf.String(), "No data to display") {
		t.Errorf("nil root output = %q", buf.String())
	}
}
