package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	simple_util "github.com/liserjrqlxue/simple-util"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires configuration, logging and the per-sample driver together. The
// exit code reflects configuration-level success only; per-sample failures
// are warnings in the run log.
func run(argv []string) int {
	cfg, err := parseArgs(newFlagSet("asmpipe"), argv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	runID := uuid.NewString()
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	lg := newLogger(cfg.LogLevel, console, runID)

	if err := cfg.Validate(); err != nil {
		lg.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		lg.Error().Err(err).Str("outdir", cfg.OutDir).Msg("create output directory")
		return 1
	}
	logF, err := os.Create(filepath.Join(cfg.OutDir, "asmpipe.log"))
	if err != nil {
		lg.Error().Err(err).Msg("create run log")
		return 1
	}
	defer simple_util.DeferClose(logF)
	lg = newLogger(cfg.LogLevel, zerolog.MultiLevelWriter(console, logF), runID)

	lg.Info().
		Str("input", cfg.InputDir).
		Str("trimmer", cfg.Trim.Backend).
		Int("threads", cfg.Threads).
		Msg("run started")

	samples, skipped, err := discoverSamples(cfg.InputDir, lg)
	if err != nil {
		lg.Error().Err(err).Msg("sample discovery failed")
		return 1
	}
	if len(samples) == 0 {
		lg.Warn().Str("input", cfg.InputDir).Msg("no mate pairs found")
	}

	results := newPipeline(cfg, lg).Run(samples)
	for _, id := range skipped {
		results = append(results, Result{Sample: Sample{ID: id}, State: StateSkipped})
	}

	if err := writeSummary(filepath.Join(cfg.OutDir, "summary.tsv"), runID, results); err != nil {
		lg.Warn().Err(err).Msg("write summary")
	}
	logCounts(lg, results)
	return 0
}

func newLogger(level string, w io.Writer, runID string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("run_id", runID).Logger()
}

func writeSummary(path, runID string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer simple_util.DeferClose(f)

	fmt.Fprintf(f, "# run\t%s\n", runID)
	fmt.Fprintln(f, "sample\tstate\tcontigs")
	for _, r := range results {
		fmt.Fprintf(f, "%s\t%s\t%d\n", r.Sample.ID, r.State, r.Contigs)
	}
	return nil
}

func logCounts(lg zerolog.Logger, results []Result) {
	counts := make(map[State]int)
	for _, r := range results {
		counts[r.State]++
	}
	ev := lg.Info()
	for state, n := range counts {
		ev = ev.Int(string(state), n)
	}
	ev.Msg("run finished")
}
