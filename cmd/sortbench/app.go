package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/amp-labs/amp-sort/bench"
	"github.com/amp-labs/amp-sort/build"
	ampcli "github.com/amp-labs/amp-sort/cli"
	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/history"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/report"
	"github.com/amp-labs/amp-sort/should"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoDataset is returned when no data file for a kind exists in the data directory.
var ErrNoDataset = errors.New("no dataset file found")

// app holds what the commands share. Tests build one with buffers and a
// scripted prompter.
type app struct {
	cfg      config
	out      io.Writer
	prompter ampcli.Prompter
	registry *prometheus.Registry
	metrics  *bench.Metrics
	tracer   trace.Tracer
}

func newApp(cfg config, out io.Writer, prompter ampcli.Prompter) *app {
	registry := prometheus.NewRegistry()

	return &app{
		cfg:      cfg,
		out:      out,
		prompter: prompter,
		registry: registry,
		metrics:  bench.NewMetrics(registry),
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "sortbench",
		Usage: "Benchmark classic sorting algorithms on numbers and words",
		Description: "Generate datasets with 'generate', benchmark them with 'run' or the interactive 'menu',\n" +
			"and look at earlier runs with 'history'. Flag defaults come from SORTBENCH_* variables.",
		Version: build.Current(buildInfo).String(),
		Writer:  a.out,
		Commands: []*cli.Command{
			a.algorithmsCommand(),
			a.generateCommand(),
			a.runCommand(),
			a.menuCommand(),
			a.historyCommand(),
		},
	}
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *app) algorithmsCommand() *cli.Command {
	return &cli.Command{
		Name:  "algorithms",
		Usage: "List the available algorithms",
		Action: func(_ context.Context, _ *cli.Command) error {
			for i, alg := range sorting.Algorithms() {
				stable := "unstable"
				if alg.Stable() {
					stable = "stable"
				}

				a.printf("%d. %-15s %-10s %-9s %s\n", i+1, alg, alg.Key(), stable, alg.Complexity())
			}

			return nil
		},
	}
}

// dataPath is where the dataset of kind lives in dir when compressed with c.
func dataPath(dir string, kind dataset.Kind, c dataset.Codec) string {
	return filepath.Join(dir, kind.String()+".txt"+c.Extension())
}

// findDataPath returns the first existing dataset of kind in dir, trying
// uncompressed first.
func findDataPath(dir string, kind dataset.Kind) (string, error) {
	for _, c := range dataset.Codecs() {
		path := dataPath(dir, kind, c)

		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: no %s file in %s, run 'sortbench generate' first", ErrNoDataset, kind, dir)
}

func parseKinds(name string) ([]dataset.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return dataset.Kinds(), nil
	}

	kind, err := dataset.ParseKind(name)
	if err != nil {
		return nil, err
	}

	return []dataset.Kind{kind}, nil
}

func parseAlgorithms(names []string) ([]sorting.Algorithm, error) {
	var algs []sorting.Algorithm

	for _, name := range names {
		for part := range strings.SplitSeq(name, ",") {
			if strings.EqualFold(strings.TrimSpace(part), "all") {
				algs = append(algs, sorting.Algorithms()...)

				continue
			}

			alg, err := sorting.ParseAlgorithm(part)
			if err != nil {
				return nil, err
			}

			algs = append(algs, alg)
		}
	}

	if len(algs) == 0 {
		return sorting.Algorithms(), nil
	}

	return algs, nil
}

func (a *app) generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write random datasets, one record per line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "all", Usage: "numbers, words or all"},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: dataset.DefaultCount, Usage: "records per dataset"},
			&cli.IntFlag{Name: "max-number", Value: dataset.DefaultMaxNumber, Usage: "numbers are drawn from [0, max-number)"},
			&cli.IntFlag{Name: "max-length", Value: dataset.DefaultMaxWordLength, Usage: "words are shorter than this"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: a.cfg.DataDir, Usage: "output directory"},
			&cli.StringFlag{Name: "codec", Aliases: []string{"c"}, Value: a.cfg.Codec, Usage: "compression: " + strings.Join(codecNames(), ", ")},
			&cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 for a random one"},
		},
		Action: a.generate,
	}
}

func (a *app) generate(ctx context.Context, cmd *cli.Command) error {
	kinds, err := parseKinds(cmd.String("kind"))
	if err != nil {
		return err
	}

	codec, err := dataset.ParseCodec(cmd.String("codec"))
	if err != nil {
		return err
	}

	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec
	}

	rng := rand.New(rand.NewPCG(seed, seed>>1)) //nolint:gosec

	dir := cmd.String("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	ctx = logger.With(ctx, "seed", seed)

	for _, kind := range kinds {
		path := dataPath(dir, kind, codec)

		a.printf("Generating %d random %s...\n", cmd.Int("count"), kind)

		if err := writeDataset(ctx, path, kind, cmd, rng); err != nil {
			return err
		}

		a.printf("Done! Data saved to %s\n", path)
	}

	return nil
}

func writeDataset(ctx context.Context, path string, kind dataset.Kind, cmd *cli.Command, rng *rand.Rand) error {
	w, err := dataset.Create(path)
	if err != nil {
		return err
	}

	switch kind {
	case dataset.KindNumbers:
		err = dataset.GenerateNumbers(ctx, w, cmd.Int("count"), cmd.Int("max-number"), rng)
	case dataset.KindWords:
		err = dataset.GenerateWords(ctx, w, cmd.Int("count"), cmd.Int("max-length"), rng)
	default:
		err = fmt.Errorf("%w: %d", dataset.ErrUnknownKind, int(kind))
	}

	if closeErr := w.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		should.Remove(path, "removing partial dataset")

		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func sizeList() string {
	parts := make([]string, 0, len(bench.Sizes()))

	for _, n := range bench.Sizes() {
		parts = append(parts, fmt.Sprint(n))
	}

	return strings.Join(parts, ", ")
}

func (a *app) runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Benchmark algorithms on a dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "numbers", Usage: "numbers, words or all"},
			&cli.StringSliceFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "algorithm keys, or all (the default)"},
			&cli.IntSliceFlag{Name: "count", Aliases: []string{"n"}, Usage: "record counts to sort (default " + sizeList() + ")"},
			&cli.StringFlag{Name: "data", Usage: "dataset file, instead of looking in --dir"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: a.cfg.DataDir, Usage: "dataset directory"},
			&cli.IntFlag{Name: "width", Value: a.cfg.WordWidth, Usage: "word record width in bytes"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Value: a.cfg.Workers, Usage: "cases run at once"},
			&cli.Int64Flag{Name: "memory-limit", Value: a.cfg.MemoryLimit, Usage: "scratch bytes one sort may hold, 0 for no limit"},
			&cli.IntFlag{Name: "threshold", Value: bench.DefaultLargeThreshold, Usage: "record count above which O(n²) runs need confirmation"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "run large O(n²) cases without asking"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: a.cfg.Format, Usage: "table, yaml or json"},
			&cli.BoolFlag{Name: "save", Usage: "store the results in the history"},
			&cli.StringFlag{Name: "history-dir", Value: a.cfg.HistoryDir, Usage: "history database directory"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to this file"},
		},
		Action: a.run,
	}
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	kinds, err := parseKinds(cmd.String("kind"))
	if err != nil {
		return err
	}

	if cmd.String("data") != "" && len(kinds) != 1 {
		return fmt.Errorf("%w: --data needs a single --kind", dataset.ErrInvalidParam)
	}

	algs, err := parseAlgorithms(cmd.StringSlice("algorithm"))
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	counts := cmd.IntSlice("count")
	if len(counts) == 0 {
		counts = bench.Sizes()
	}

	runner := a.runner(cmd.Int("workers"), cmd.Int64("memory-limit"), cmd.Int("threshold"), cmd.Bool("yes"))

	var all []bench.Result

	var runErr error

	for _, kind := range kinds {
		path := cmd.String("data")
		if path == "" {
			if path, err = findDataPath(cmd.String("dir"), kind); err != nil {
				return err
			}
		}

		set, err := dataset.Load(ctx, path, kind, slices.Max(counts), cmd.Int("width"))
		if err != nil {
			return err
		}

		results, err := runner.Run(ctx, bench.Plan(set, algs, counts...))
		runErr = errors.Join(runErr, err)

		if err := report.Write(a.out, format, report.Title(kind), results); err != nil {
			return err
		}

		all = append(all, results...)
	}

	if cmd.Bool("save") {
		if err := a.save(cmd.String("history-dir"), all); err != nil {
			return err
		}
	}

	if path := cmd.String("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", path, err)
		}
	}

	return runErr
}

func (a *app) runner(workers int, memoryLimit int64, threshold int, yes bool) *bench.Runner {
	return &bench.Runner{
		Workers:        workers,
		MemoryLimit:    memoryLimit,
		LargeThreshold: threshold,
		Tracer:         a.tracer,
		Metrics:        a.metrics,
		Confirm: func(ctx context.Context, c bench.Case) bool {
			if yes {
				return true
			}

			ok, err := a.prompter.Confirm(fmt.Sprintf("%s is O(n²), sorting %d records can take very long. Continue",
				c.Algorithm, c.Count))
			if err != nil {
				logger.Get(ctx).Warn("Prompt failed, skipping", "error", err)

				return false
			}

			return ok
		},
	}
}

func (a *app) save(dir string, results []bench.Result) error {
	store, err := history.Open(dir, logger.Hostname())
	if err != nil {
		return err
	}

	defer should.Close(store, "closing history")

	run, err := store.Save(results)
	if err != nil {
		return err
	}

	a.printf("Saved run %s\n", run.ID)

	return nil
}
