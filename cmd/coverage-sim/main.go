// SPDX-License-Identifier: MIT

// coverage-sim plays coverage episodes with one of the built-in routing
// policies and prints a reward summary. With --trace every step is
// recorded to a zstd-compressed CBOR trace that can be replayed without
// the simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/henghenghahei849/gym-flock/config"
	"github.com/henghenghahei849/gym-flock/coverage"
	"github.com/henghenghahei849/gym-flock/routing"
	"github.com/henghenghahei849/gym-flock/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	episodes   int
	policy     string
	seed       int64
	tracePath  string
	logLevel   string
	logFormat  string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f flags
	flagSet := pflag.NewFlagSet("coverage-sim", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&f.configPath, "config", "", "YAML or JSONC configuration file (default: built-in defaults)")
	flagSet.IntVar(&f.episodes, "episodes", 1, "number of episodes to play")
	flagSet.StringVar(&f.policy, "policy", "", "routing policy: random, greedy or planned (default: from config)")
	flagSet.Int64Var(&f.seed, "seed", 1, "random seed")
	flagSet.StringVar(&f.tracePath, "trace", "", "write a step trace to this file")
	flagSet.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	flagSet.StringVar(&f.logFormat, "log-format", "text", "text or json")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if f.episodes < 1 {
		return fmt.Errorf("--episodes must be positive, got %d", f.episodes)
	}

	logger, err := newLogger(stderr, f.logLevel, f.logFormat)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if f.configPath != "" {
		if cfg, err = config.Load(f.configPath); err != nil {
			return err
		}
	}
	policy := cfg.Routing.Policy
	if f.policy != "" {
		if policy, err = routing.ParsePolicy(f.policy); err != nil {
			return err
		}
	}

	env, err := coverage.New(cfg, coverage.WithLogger(logger), coverage.WithSeed(f.seed))
	if err != nil {
		return err
	}

	var (
		hook coverage.StepHook
		tw   *trace.Writer
	)
	if f.tracePath != "" {
		file, err := os.Create(f.tracePath)
		if err != nil {
			return err
		}
		defer file.Close()
		if tw, err = trace.NewWriter(file, cfg.Trace.Compression); err != nil {
			return err
		}
		defer tw.Close()
		hook = func(id uuid.UUID, actions []int, res *coverage.Result) error {
			return tw.Write(trace.Record{
				Episode: id,
				Step:    res.Info.Step,
				Actions: actions,
				Reward:  res.Reward,
				Done:    res.Done,
				Obs:     res.Obs,
			})
		}
	}

	stats, err := coverage.Rollout(ctx, env, policy, f.episodes, hook)
	if err != nil {
		return err
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("closing trace: %w", err)
		}
		logger.Info("trace written", "path", f.tracePath, "records", tw.Count())
	}
	printSummary(stdout, policy, stats)
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("--log-format: unknown format %q", format)
	}
}

func printSummary(w io.Writer, policy routing.Policy, stats []coverage.EpisodeStats) {
	rewards := lo.Map(stats, func(s coverage.EpisodeStats, _ int) int { return s.Reward })
	completed := lo.CountBy(stats, func(s coverage.EpisodeStats) bool { return s.AllVisited })
	mean := float64(lo.Sum(rewards)) / float64(len(stats))
	fmt.Fprintf(w, "policy:      %s\n", policy)
	fmt.Fprintf(w, "episodes:    %d\n", len(stats))
	fmt.Fprintf(w, "mean reward: %.2f\n", mean)
	fmt.Fprintf(w, "max reward:  %d\n", lo.Max(rewards))
	fmt.Fprintf(w, "completed:   %d/%d (%.0f%%)\n", completed, len(stats), 100*float64(completed)/float64(len(stats)))
}
