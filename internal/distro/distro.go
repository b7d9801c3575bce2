// Package distro detects the running Linux distribution and maps it
// to package-manager commands used by optimize and uninstall.
package distro

import (
	"os"
	"os/exec"
	"strings"
)

// Distro identifies a known Linux distribution family.
type Distro int

const (
	Unknown Distro = iota
	Ubuntu
	Debian
	Fedora
	CentOS
	RHEL
	Arch
	Manjaro
	OpenSUSE
	Alpine
	Gentoo
)

func (d Distro) String() string {
	switch d {
	case Ubuntu:
		return "Ubuntu"
	case Debian:
		return "Debian"
	case Fedora:
		return "Fedora"
	case CentOS:
		return "CentOS"
	case RHEL:
		return "Red Hat Enterprise Linux"
	case Arch:
		return "Arch Linux"
	case Manjaro:
		return "Manjaro"
	case OpenSUSE:
		return "openSUSE"
	case Alpine:
		return "Alpine Linux"
	case Gentoo:
		return "Gentoo"
	default:
		return "Linux"
	}
}

// PackageManager identifies the native package manager.
type PackageManager int

const (
	UnknownPM PackageManager = iota
	Apt
	Dnf
	Yum
	Pacman
	Zypper
	Apk
	Portage
)

func (pm PackageManager) String() string {
	switch pm {
	case Apt:
		return "apt"
	case Dnf:
		return "dnf"
	case Yum:
		return "yum"
	case Pacman:
		return "pacman"
	case Zypper:
		return "zypper"
	case Apk:
		return "apk"
	case Portage:
		return "portage"
	default:
		return "unknown"
	}
}

// CleanCacheCmd returns the package-cache clean command, or nil when
// the package manager has none.
func (pm PackageManager) CleanCacheCmd() []string {
	switch pm {
	case Apt:
		return []string{"apt-get", "clean"}
	case Dnf:
		return []string{"dnf", "clean", "all"}
	case Yum:
		return []string{"yum", "clean", "all"}
	case Pacman:
		return []string{"pacman", "-Sc", "--noconfirm"}
	case Zypper:
		return []string{"zypper", "clean", "--all"}
	case Apk:
		return []string{"apk", "cache", "clean"}
	default:
		return nil
	}
}

// AutoremoveCmd returns the orphaned-package removal command, or nil.
// Pacman needs a query pipeline rather than a single argv, so it is
// left out here.
func (pm PackageManager) AutoremoveCmd() []string {
	switch pm {
	case Apt:
		return []string{"apt-get", "autoremove", "-y"}
	case Dnf:
		return []string{"dnf", "autoremove", "-y"}
	case Yum:
		return []string{"yum", "autoremove", "-y"}
	case Portage:
		return []string{"emerge", "--depclean"}
	default:
		return nil
	}
}

// ListPackagesCmd returns the installed-package listing command with
// name and size columns where the manager supports it.
func (pm PackageManager) ListPackagesCmd() []string {
	switch pm {
	case Apt:
		return []string{"dpkg-query", "-W", "-f", "${Package}\t${Installed-Size}\n"}
	case Dnf, Yum:
		return []string{"rpm", "-qa", "--queryformat", "%{NAME}\t%{SIZE}\n"}
	case Pacman:
		return []string{"pacman", "-Q"}
	case Zypper:
		return []string{"rpm", "-qa"}
	case Apk:
		return []string{"apk", "list", "--installed"}
	case Portage:
		return []string{"qlist", "-I"}
	default:
		return nil
	}
}

// CachePaths returns the package manager's cache directories.
func (pm PackageManager) CachePaths() []string {
	switch pm {
	case Apt:
		return []string{"/var/cache/apt/archives"}
	case Dnf:
		return []string{"/var/cache/dnf"}
	case Yum:
		return []string{"/var/cache/yum"}
	case Pacman:
		return []string{"/var/cache/pacman/pkg"}
	case Zypper:
		return []string{"/var/cache/zypp"}
	case Apk:
		return []string{"/var/cache/apk"}
	case Portage:
		return []string{"/var/cache/distfiles"}
	default:
		return nil
	}
}

// Info describes the detected system.
type Info struct {
	Distro     Distro
	Name       string // display name, falls back to os-release NAME
	Version    string
	PkgManager PackageManager
	HasSnap    bool
	HasFlatpak bool
}

// Detect inspects the running system. It never fails; unknown systems
// come back as generic Linux with whatever package manager is on PATH.
func Detect() Info {
	d, name, version := detectDistro()

	info := Info{
		Distro:     d,
		Name:       name,
		Version:    version,
		PkgManager: packageManagerFor(d),
		HasSnap:    CommandExists("snap"),
		HasFlatpak: CommandExists("flatpak"),
	}
	if info.Name == "" {
		info.Name = d.String()
	}
	return info
}

// IsDebianBased reports apt/dpkg territory.
func (i Info) IsDebianBased() bool {
	return i.Distro == Ubuntu || i.Distro == Debian
}

func detectDistro() (Distro, string, string) {
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		return ParseOSRelease(string(data))
	}

	// Older Ubuntu images carry lsb-release only.
	if data, err := os.ReadFile("/etc/lsb-release"); err == nil {
		content := string(data)
		if strings.Contains(content, "Ubuntu") {
			return Ubuntu, "Ubuntu", osReleaseValue(content, "DISTRIB_RELEASE")
		}
	}

	if _, err := os.Stat("/etc/debian_version"); err == nil {
		return Debian, "Debian", ""
	}
	if _, err := os.Stat("/etc/fedora-release"); err == nil {
		return Fedora, "Fedora", ""
	}
	if _, err := os.Stat("/etc/arch-release"); err == nil {
		return Arch, "Arch Linux", ""
	}

	return Unknown, "", ""
}

// ParseOSRelease maps /etc/os-release content to a distro, display
// name, and version.
func ParseOSRelease(content string) (Distro, string, string) {
	id := strings.ToLower(osReleaseValue(content, "ID"))
	version := osReleaseValue(content, "VERSION_ID")

	var d Distro
	switch id {
	case "ubuntu":
		d = Ubuntu
	case "debian":
		d = Debian
	case "fedora":
		d = Fedora
	case "centos":
		d = CentOS
	case "rhel":
		d = RHEL
	case "arch":
		d = Arch
	case "manjaro":
		d = Manjaro
	case "opensuse", "opensuse-leap", "opensuse-tumbleweed":
		d = OpenSUSE
	case "alpine":
		d = Alpine
	case "gentoo":
		d = Gentoo
	default:
		d = Unknown
	}

	name := d.String()
	if d == Unknown {
		if n := osReleaseValue(content, "NAME"); n != "" {
			name = n
		}
	}
	return d, name, version
}

// osReleaseValue extracts a value from KEY=value lines, unquoting.
// Keys match exactly; ID must not pick up ID_LIKE.
func osReleaseValue(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || k != key {
			continue
		}
		return strings.Trim(v, `"`)
	}
	return ""
}

func packageManagerFor(d Distro) PackageManager {
	switch d {
	case Ubuntu, Debian:
		return Apt
	case Fedora:
		return Dnf
	case CentOS, RHEL:
		if CommandExists("dnf") {
			return Dnf
		}
		return Yum
	case Arch, Manjaro:
		return Pacman
	case OpenSUSE:
		return Zypper
	case Alpine:
		return Apk
	case Gentoo:
		return Portage
	}

	for _, probe := range []struct {
		cmd string
		pm  PackageManager
	}{
		{"apt-get", Apt},
		{"dnf", Dnf},
		{"yum", Yum},
		{"pacman", Pacman},
		{"zypper", Zypper},
		{"apk", Apk},
	} {
		if CommandExists(probe.cmd) {
			return probe.pm
		}
	}
	return UnknownPM
}

// CommandExists reports whether a binary is on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
