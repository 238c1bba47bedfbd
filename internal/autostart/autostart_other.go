//go:build !windows

package autostart

import "errors"

var errNotWindows = errors.New("windows registry not available on this platform")

func enableWindows(string) error { return errNotWindows }

func disableWindows() error { return errNotWindows }

func isEnabledWindows() bool { return false }
