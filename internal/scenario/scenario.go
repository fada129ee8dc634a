// Package scenario reads stress-testing scenarios from TOML files, as an
// alternative to spelling every program path and limit out on the command
// line.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/programme-lv/stresser/internal/execute"
)

// Scenario is a runnable configuration converted from TOML.
type Scenario struct {
	Generator   string
	Candidate   string
	References  []string
	Rounds      int
	Constraints execute.Constraints
}

// specLimits describes candidate resource limits in the scenario file.
// References always run unconstrained.
type specLimits struct {
	WallMs int64 `toml:"wall_ms"`
	MemKiB int64 `toml:"mem_kib"`
}

type specRoot struct {
	Generator  string     `toml:"generator"`
	Candidate  string     `toml:"candidate"`
	References []string   `toml:"references"`
	Rounds     int        `toml:"rounds"`
	Limits     specLimits `toml:"limits"`
}

// Parse reads a scenario TOML file.
func Parse(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if root.Generator == "" {
		return nil, fmt.Errorf("scenario is missing a generator")
	}
	if root.Candidate == "" {
		return nil, fmt.Errorf("scenario is missing a candidate")
	}
	if root.Rounds < 0 {
		return nil, fmt.Errorf("rounds must not be negative, got %d", root.Rounds)
	}

	rounds := root.Rounds
	if rounds == 0 {
		rounds = 1
	}

	return &Scenario{
		Generator:  root.Generator,
		Candidate:  root.Candidate,
		References: root.References,
		Rounds:     rounds,
		Constraints: execute.Constraints{
			WallTimeLim:  time.Duration(root.Limits.WallMs) * time.Millisecond,
			MemoryLimKiB: root.Limits.MemKiB,
		},
	}, nil
}
