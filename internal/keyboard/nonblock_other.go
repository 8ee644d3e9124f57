//go:build !unix

// ABOUTME: Non-blocking stdin fallback for platforms without it
// ABOUTME: The raw reader falls back to blocking reads
package keyboard

import "errors"

func setNonblock(fd int, on bool) error {
	return errors.New("non-blocking stdin not supported on this platform")
}

func isWouldBlock(err error) bool {
	return false
}
