//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || illumos || aix

package mtime

import (
	"errors"

	"golang.org/x/sys/unix"
)

func statSystem(path string) (Mtime, error) {
	var st unix.Stat_t
	for {
		err := unix.Stat(path, &st)
		if err == nil {
			break
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if errors.Is(err, unix.ENOENT) {
			return Missing(), nil
		}
		return Unknown(), &StatError{Path: path, Err: err}
	}
	return Known(st.Mtim.Nano()), nil
}
