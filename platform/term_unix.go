//go:build linux || darwin || freebsd || netbsd || openbsd

package platform

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// EnterRawMode turns off line buffering and echo on the terminal behind fd,
// with reads returning immediately. The returned func restores the old state.
func EnterRawMode(fd int) (func() error, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, errors.Wrap(err, "reading terminal state")
	}

	restore := *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}

	return func() error {
		return errors.Wrap(unix.IoctlSetTermios(fd, ioctlSetTermios, &restore), "restoring terminal state")
	}, nil
}
