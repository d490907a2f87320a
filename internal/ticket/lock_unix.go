//go:build unix

package ticket

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// withLock runs fn while holding an exclusive flock on path. The lock file is
// created when missing and left in place afterwards.
func withLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePerms)
	if err != nil {
		return fmt.Errorf("opening lock %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}

	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}

	defer func() { _ = unix.Flock(int(f.Fd()), unix.LOCK_UN) }()

	return fn()
}
