//go:build linux || darwin || freebsd

package memory

import "golang.org/x/sys/unix"

// lockSecret attempts to mlock the pages backing buf so the kernel will
// not write them to swap. It reports whether the lock succeeded; a
// failure (permission denied, RLIMIT_MEMLOCK exceeded) is not an error
// for the caller, just a reason to treat the memory as ordinary.
func lockSecret(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return unix.Mlock(buf) == nil
}

func unlockSecret(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munlock(buf)
}
