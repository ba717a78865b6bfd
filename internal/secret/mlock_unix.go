//go:build unix

package secret

import "golang.org/x/sys/unix"

// lock keeps b out of swap. Failure (RLIMIT_MEMLOCK, unprivileged
// containers) leaves the buffer unlocked.
func lock(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return unix.Mlock(b) == nil
}

func unlock(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munlock(b)
}
