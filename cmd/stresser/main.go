// Command stresser drives randomized differential testing: every round it
// runs a generator program, feeds the generated input to a candidate and a
// set of trusted reference programs, and reports whether the candidate
// disagrees with the reference consensus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/stresser/internal/corpus"
	"github.com/programme-lv/stresser/internal/environment"
	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/program"
	"github.com/programme-lv/stresser/internal/report"
	"github.com/programme-lv/stresser/internal/report/natsrep"
	"github.com/programme-lv/stresser/internal/report/sqsrep"
	"github.com/programme-lv/stresser/internal/report/termrep"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/scenario"
	"github.com/programme-lv/stresser/internal/verdict"
)

func main() {
	cmd := &cli.Command{
		Name:  "stresser",
		Usage: "find correctness bugs by comparing a program against reference solutions on random inputs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "generator",
				Aliases: []string{"g"},
				Usage:   "the test-case generator program",
			},
			&cli.StringFlag{
				Name:    "candidate",
				Aliases: []string{"p"},
				Usage:   "the program to be examined",
			},
			&cli.StringSliceFlag{
				Name:    "reference",
				Aliases: []string{"r"},
				Usage:   "a reference program (repeatable)",
			},
			&cli.IntFlag{
				Name:    "rounds",
				Aliases: []string{"c"},
				Usage:   "for how many rounds the candidate should be ran",
				Value:   1,
			},
			&cli.DurationFlag{
				Name:    "time-limit",
				Aliases: []string{"t"},
				Usage:   "wall-clock limit for the candidate (references are left alone)",
			},
			&cli.IntFlag{
				Name:    "memory-limit",
				Aliases: []string{"m"},
				Usage:   "memory limit in KiB for the candidate (references are left alone)",
			},
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "read generator, candidate, references, rounds and limits from a TOML file",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "directory to store inputs of mismatched rounds for replay",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	generator, err := program.Resolve(sc.Generator)
	if err != nil {
		return fmt.Errorf("cannot open generator: %w", err)
	}
	candidate, err := program.Resolve(sc.Candidate)
	if err != nil {
		return fmt.Errorf("cannot open candidate: %w", err)
	}
	references := make([]*program.Program, 0, len(sc.References))
	for _, ref := range sc.References {
		p, err := program.Resolve(ref)
		if err != nil {
			return fmt.Errorf("cannot open reference: %w", err)
		}
		references = append(references, p)
	}

	var store *corpus.Store
	if dir := cmd.String("corpus"); dir != "" {
		store, err = corpus.New(dir)
		if err != nil {
			return err
		}
	}

	runUuid := uuid.NewString()
	reporters, err := buildReporters(ctx, runUuid)
	if err != nil {
		return err
	}

	reporters.StartRun(sc.Rounds, sc.Candidate, sc.References)

	var sum report.Summary
	for i := 0; i < sc.Rounds; i++ {
		reporters.StartRound(i)
		res := round.Run(ctx, generator, candidate, references, sc.Constraints)

		var class *verdict.Classification
		switch res.Kind {
		case round.Completed:
			if len(references) == 0 {
				sum.Unchecked++
				break
			}
			c := verdict.Classify(res.CandidateOutput, res.ReferenceOutputs)
			class = &c
			switch c.Verdict {
			case verdict.AllMatch:
				sum.Matches++
			case verdict.CandidateMismatch:
				sum.Mismatches++
				saveToCorpus(store, res.Input)
			case verdict.ReferenceInconsistency:
				sum.Inconsistencies++
				saveToCorpus(store, res.Input)
			}
		default:
			sum.Failures++
		}
		sum.Rounds++

		reporters.FinishRound(i, res, class)
	}

	reporters.FinishRun(sum)

	if sum.Mismatches+sum.Inconsistencies+sum.Failures > 0 {
		return cli.Exit("the candidate disagreed with the references or some round failed", 1)
	}
	return nil
}

// loadScenario assembles the run configuration from a scenario file or from
// individual flags; flags and scenario files are mutually exclusive.
func loadScenario(cmd *cli.Command) (*scenario.Scenario, error) {
	if path := cmd.String("scenario"); path != "" {
		if cmd.String("generator") != "" || cmd.String("candidate") != "" {
			return nil, fmt.Errorf("--scenario cannot be combined with --generator/--candidate")
		}
		return scenario.Parse(path)
	}

	if cmd.String("generator") == "" {
		return nil, fmt.Errorf("a generator is required (--generator or --scenario)")
	}
	if cmd.String("candidate") == "" {
		return nil, fmt.Errorf("a candidate is required (--candidate or --scenario)")
	}

	rounds := int(cmd.Int("rounds"))
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", rounds)
	}

	return &scenario.Scenario{
		Generator:  cmd.String("generator"),
		Candidate:  cmd.String("candidate"),
		References: cmd.StringSlice("reference"),
		Rounds:     rounds,
		Constraints: execute.Constraints{
			WallTimeLim:  cmd.Duration("time-limit"),
			MemoryLimKiB: int64(cmd.Int("memory-limit")),
		},
	}, nil
}

// buildReporters always renders to the terminal and additionally streams to
// NATS and SQS when their endpoints are configured in the environment.
func buildReporters(ctx context.Context, runUuid string) (report.Multi, error) {
	env := environment.ReadEnvConfig()
	reporters := report.Multi{termrep.New()}

	if env.NatsURL != "" {
		nc, err := nats.Connect(env.NatsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		reporters = append(reporters, natsrep.New(nc, runUuid, "stresser.runs."+runUuid))
	}

	if env.SqsQueueURL != "" {
		rep, err := sqsrep.New(ctx, runUuid, env.AwsRegion, env.SqsQueueURL)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, rep)
	}

	return reporters, nil
}

func saveToCorpus(store *corpus.Store, input string) {
	if store == nil {
		return
	}
	path, err := store.SaveInput(input)
	if err != nil {
		slog.Error("failed to save failing input", "error", err)
		return
	}
	slog.Info("saved failing input", "path", path)
}
