//go:build linux

package execute

import "golang.org/x/sys/unix"

// MemoryEnforcer applies a resident-memory ceiling to a running process.
// Enforcement is platform-dependent; Run only depends on this interface.
type MemoryEnforcer interface {
	Enforce(pid int, limitKiB int64) error
}

// DefaultEnforcer is the enforcer Run uses.
var DefaultEnforcer MemoryEnforcer = rlimitEnforcer{}

// rlimitEnforcer caps the address space of the child with RLIMIT_AS.
// The limit lands right after the process starts, so allocations made in the
// first instants are not bounded.
type rlimitEnforcer struct{}

func (rlimitEnforcer) Enforce(pid int, limitKiB int64) error {
	bytes := uint64(limitKiB) * 1024
	lim := unix.Rlimit{Cur: bytes, Max: bytes}
	return unix.Prlimit(pid, unix.RLIMIT_AS, &lim, nil)
}
