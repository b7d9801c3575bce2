package core

import (
	"os"

	"golang.org/x/sys/unix"
)

// KernelRelease returns the running kernel's release string, e.g.
// "6.8.0-45-generic", straight from uname(2).
func KernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return nulTerminated(uts.Release[:]), nil
}

// MachineArch returns the hardware identifier from uname(2), e.g. "x86_64".
func MachineArch() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return nulTerminated(uts.Machine[:]), nil
}

func nulTerminated(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// IsRoot reports whether the process runs with uid 0. Commands pass
// this into the validator at construction; nothing below the command
// layer queries it ambiently.
func IsRoot() bool {
	return os.Geteuid() == 0
}
