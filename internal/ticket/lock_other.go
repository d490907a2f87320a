//go:build !unix

package ticket

// withLock runs fn without locking; advisory locks are only available on unix.
func withLock(_ string, fn func() error) error {
	return fn()
}
