//go:build unix

// ABOUTME: Non-blocking stdin helpers for Unix terminals
// ABOUTME: Lets the raw reader poll so it can be stopped cleanly
package keyboard

import (
	"errors"
	"syscall"
)

func setNonblock(fd int, on bool) error {
	return syscall.SetNonblock(fd, on)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
