//go:build !linux

package execute

import "errors"

// MemoryEnforcer applies a resident-memory ceiling to a running process.
// Enforcement is platform-dependent; Run only depends on this interface.
type MemoryEnforcer interface {
	Enforce(pid int, limitKiB int64) error
}

// DefaultEnforcer is the enforcer Run uses.
var DefaultEnforcer MemoryEnforcer = unsupportedEnforcer{}

type unsupportedEnforcer struct{}

func (unsupportedEnforcer) Enforce(pid int, limitKiB int64) error {
	return errors.New("memory limits are only supported on linux")
}
