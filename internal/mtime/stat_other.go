//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || illumos || aix)

package mtime

import (
	"errors"
	"io/fs"
	"os"
)

func statSystem(path string) (Mtime, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Missing(), nil
		}
		return Unknown(), &StatError{Path: path, Err: err}
	}
	return FromTime(info.ModTime()), nil
}
