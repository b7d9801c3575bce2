package distro

import "testing"

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
ID=ubuntu
ID_LIKE=debian
`

const fedoraOSRelease = `NAME="Fedora Linux"
VERSION="39 (Workstation Edition)"
ID=fedora
VERSION_ID=39
`

const leapOSRelease = `NAME="openSUSE Leap"
ID="opensuse-leap"
ID_LIKE="suse opensuse"
VERSION_ID="15.5"
`

const nixOSRelease = `NAME=NixOS
ID=nixos
VERSION_ID="23.11"
`

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		distro  Distro
		display string
		version string
	}{
		{"ubuntu", ubuntuOSRelease, Ubuntu, "Ubuntu", "22.04"},
		{"fedora", fedoraOSRelease, Fedora, "Fedora", "39"},
		{"opensuse leap", leapOSRelease, OpenSUSE, "openSUSE", "15.5"},
		{"unknown keeps NAME", nixOSRelease, Unknown, "NixOS", "23.11"},
		{"empty", "", Unknown, "Linux", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, name, version := ParseOSRelease(tt.content)
			if d != tt.distro {
				t.Errorf("distro = %v, want %v", d, tt.distro)
			}
			if name != tt.display {
				t.Errorf("name = %q, want %q", name, tt.display)
			}
			if version != tt.version {
				t.Errorf("version = %q, want %q", version, tt.version)
			}
		})
	}
}

func TestOSReleaseValueExactKeyMatch(t *testing.T) {
	// ID_LIKE precedes ID here; the lookup must not latch onto it.
	content := "ID_LIKE=debian\nID=ubuntu\n"
	if got := osReleaseValue(content, "ID"); got != "ubuntu" {
		t.Fatalf("osReleaseValue(ID) = %q, want %q", got, "ubuntu")
	}
}

func TestPackageManagerCommands(t *testing.T) {
	tests := []struct {
		pm         PackageManager
		clean      string
		autoremove string
	}{
		{Apt, "apt-get", "apt-get"},
		{Dnf, "dnf", "dnf"},
		{Pacman, "pacman", ""},
		{Zypper, "zypper", ""},
		{Portage, "", "emerge"},
		{UnknownPM, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pm.String(), func(t *testing.T) {
			clean := tt.pm.CleanCacheCmd()
			if tt.clean == "" {
				if clean != nil {
					t.Errorf("CleanCacheCmd = %v, want nil", clean)
				}
			} else if len(clean) == 0 || clean[0] != tt.clean {
				t.Errorf("CleanCacheCmd = %v, want first arg %q", clean, tt.clean)
			}

			auto := tt.pm.AutoremoveCmd()
			if tt.autoremove == "" {
				if auto != nil {
					t.Errorf("AutoremoveCmd = %v, want nil", auto)
				}
			} else if len(auto) == 0 || auto[0] != tt.autoremove {
				t.Errorf("AutoremoveCmd = %v, want first arg %q", auto, tt.autoremove)
			}
		})
	}
}

func TestCachePathsPerManager(t *testing.T) {
	if got := Apt.CachePaths(); len(got) != 1 || got[0] != "/var/cache/apt/archives" {
		t.Errorf("Apt.CachePaths = %v", got)
	}
	if got := Pacman.CachePaths(); len(got) != 1 || got[0] != "/var/cache/pacman/pkg" {
		t.Errorf("Pacman.CachePaths = %v", got)
	}
	if got := UnknownPM.CachePaths(); got != nil {
		t.Errorf("UnknownPM.CachePaths = %v, want nil", got)
	}
}

func TestDistroDisplayNames(t *testing.T) {
	if got := RHEL.String(); got != "Red Hat Enterprise Linux" {
		t.Errorf("RHEL.String() = %q", got)
	}
	if got := Unknown.String(); got != "Linux" {
		t.Errorf("Unknown.String() = %q", got)
	}
}
