// Package program resolves a filesystem path to a runnable invocation.
//
// A path either points at a native executable, or at a script whose
// interpreter has to be located on PATH first. Resolution happens once per
// program, before any round runs, so a missing interpreter is reported up
// front instead of failing every round.
package program

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Kind tells how a resolved program is spawned.
type Kind int

const (
	// KindNative is a directly runnable executable.
	KindNative Kind = iota
	// KindScript is a source file run through an interpreter.
	KindScript
)

// Program is a resolved, ready-to-spawn program reference. It is immutable
// after Resolve returns.
type Program struct {
	Path        string
	Kind        Kind
	Interpreter string // interpreter executable path, empty for KindNative
}

// ErrInterpreterNotFound is returned when none of the candidate interpreter
// names for a script extension exist on PATH.
var ErrInterpreterNotFound = errors.New("interpreter not found")

// UnsupportedTypeError is returned for file extensions the resolver does not
// know how to run.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported program type %q", e.Ext)
}

// interpreterNames maps a script extension to candidate interpreter
// executables, tried in order.
var interpreterNames = map[string][]string{
	".py": {"python3", "python"},
	".sh": {"bash", "sh"},
}

// lookupCache caches successful PATH lookups. Hundreds of rounds resolve the
// same couple of interpreters, and PATH entries do not change mid run.
// Failed lookups are not cached so the cache never masks a removed binary.
var lookupCache = xsync.NewMapOf[string, string]()

// Resolve maps path to a Program. It performs no I/O beyond interpreter
// discovery and never spawns a process.
func Resolve(path string) (*Program, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".exe":
		return &Program{Path: path, Kind: KindNative}, nil
	}

	names, ok := interpreterNames[ext]
	if !ok {
		return nil, &UnsupportedTypeError{Ext: ext}
	}

	interp, err := findInterpreter(names)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	return &Program{Path: path, Kind: KindScript, Interpreter: interp}, nil
}

func findInterpreter(names []string) (string, error) {
	for _, name := range names {
		if p, ok := lookupCache.Load(name); ok {
			return p, nil
		}
		p, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		lookupCache.Store(name, p)
		return p, nil
	}
	return "", fmt.Errorf("%w (tried %s)", ErrInterpreterNotFound, strings.Join(names, ", "))
}

// Argv returns the argument vector used to spawn the program.
func (p *Program) Argv() []string {
	if p.Kind == KindScript {
		return []string{p.Interpreter, p.Path}
	}
	return []string{p.Path}
}

func (p *Program) String() string {
	return p.Path
}
