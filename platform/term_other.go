//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package platform

import "github.com/pkg/errors"

func EnterRawMode(fd int) (func() error, error) {
	return nil, errors.New("raw terminal mode is not supported on this platform")
}
