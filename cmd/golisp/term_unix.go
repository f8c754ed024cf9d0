//go:build linux || darwin

package main

import "golang.org/x/sys/unix"

// isTerminal reports whether fd refers to an interactive terminal.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}
