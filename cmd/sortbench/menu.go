package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/amp-labs/amp-sort/bench"
	ampcli "github.com/amp-labs/amp-sort/cli"
	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/report"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"
)

const (
	allAlgorithms = "All algorithms"
	exitChoice    = "Exit"
)

// loader returns the dataset of a kind.
type loader func(ctx context.Context, kind dataset.Kind) (dataset.Set, error)

// menu is the interactive loop: pick an algorithm (or all of them), a data
// type and a size, confirm when an O(n²) algorithm meets a large input, see
// the table, then decide whether to go again.
type menu struct {
	prompter ampcli.Prompter
	runner   *bench.Runner
	load     loader
	report   func(title string, results []bench.Result) error
}

func (a *app) menuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Choose and run benchmarks interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: a.cfg.DataDir, Usage: "dataset directory"},
			&cli.IntFlag{Name: "width", Value: a.cfg.WordWidth, Usage: "word record width in bytes"},
			&cli.Int64Flag{Name: "memory-limit", Value: a.cfg.MemoryLimit, Usage: "scratch bytes one sort may hold, 0 for no limit"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a.printf("%s\n", ampcli.BannerAutoWidth("Sorting Algorithm Performance Analysis", ampcli.AlignCenter))

			m := &menu{
				prompter: a.prompter,
				runner:   a.runner(1, cmd.Int64("memory-limit"), bench.DefaultLargeThreshold, false),
				load:     cachedLoader(fileLoader(cmd.String("dir"), cmd.Int("width"))),
				report: func(title string, results []bench.Result) error {
					return report.Table(a.out, title, results)
				},
			}

			err := m.loop(ctx)

			a.printf("\nDone. Thank you!\n")

			return err
		},
	}
}

func fileLoader(dir string, width int) loader {
	return func(ctx context.Context, kind dataset.Kind) (dataset.Set, error) {
		path, err := findDataPath(dir, kind)
		if err != nil {
			return nil, err
		}

		logger.Get(ctx).Info("Loading dataset", "path", path)

		return dataset.Load(ctx, path, kind, 0, width)
	}
}

func cachedLoader(load loader) loader {
	sets := make(map[dataset.Kind]dataset.Set)

	return func(ctx context.Context, kind dataset.Kind) (dataset.Set, error) {
		if set, ok := sets[kind]; ok {
			return set, nil
		}

		set, err := load(ctx, kind)
		if err != nil {
			return nil, err
		}

		sets[kind] = set

		return set, nil
	}
}

func (m *menu) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		again, err := m.once(ctx)

		switch {
		case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
			return nil
		case err != nil:
			return err
		case !again:
			return nil
		}
	}
}

// once runs one pass of the menu and reports whether the user wants another.
func (m *menu) once(ctx context.Context) (bool, error) {
	algs, ok, err := m.chooseAlgorithms()
	if err != nil || !ok {
		return false, err
	}

	kinds := dataset.Kinds()

	kindIdx, err := m.prompter.Select("Choose a data type", []string{"Numbers", "Words"})
	if err != nil {
		return false, err
	}

	sizes := bench.Sizes()

	sizeIdx, err := m.prompter.Select("Choose the number of records", sizeLabels(sizes))
	if err != nil {
		return false, err
	}

	kind, count := kinds[kindIdx], sizes[sizeIdx]

	if needsWarning(algs, count, m.runner.LargeThreshold) {
		ok, err := m.prompter.Confirm(fmt.Sprintf(
			"WARNING: O(n²) algorithms on more than %d records can take a very long time. Continue",
			m.runner.LargeThreshold))
		if err != nil {
			return false, err
		}

		if !ok {
			return true, nil
		}
	}

	set, err := m.load(ctx, kind)
	if err != nil {
		return false, err
	}

	runner := *m.runner
	runner.Confirm = func(context.Context, bench.Case) bool { return true }

	results, runErr := runner.Run(ctx, bench.Plan(set, algs, count))
	if runErr != nil {
		logger.Get(ctx).Warn("Some cases failed", "error", runErr)
	}

	if err := m.report(report.Title(kind), results); err != nil {
		return false, err
	}

	return m.prompter.Confirm("Run again")
}

// chooseAlgorithms returns false when the user picks Exit.
func (m *menu) chooseAlgorithms() ([]sorting.Algorithm, bool, error) {
	all := sorting.Algorithms()

	items := make([]string, 0, len(all)+2) //nolint:mnd
	for _, alg := range all {
		items = append(items, alg.String())
	}

	items = append(items, allAlgorithms, exitChoice)

	idx, err := m.prompter.Select("Choose a sorting algorithm", items)
	if err != nil {
		return nil, false, err
	}

	switch {
	case idx < 0 || idx >= len(items):
		return nil, false, nil
	case idx < len(all):
		return []sorting.Algorithm{all[idx]}, true, nil
	case items[idx] == allAlgorithms:
		return all, true, nil
	default:
		return nil, false, nil
	}
}

func needsWarning(algs []sorting.Algorithm, count, threshold int) bool {
	if count <= threshold {
		return false
	}

	for _, alg := range algs {
		if alg.Quadratic() {
			return true
		}
	}

	return false
}

func sizeLabels(sizes []int) []string {
	labels := make([]string, len(sizes))

	for i, n := range sizes {
		labels[i] = fmt.Sprintf("%s records", groupThousands(n))
	}

	return labels
}

func groupThousands(n int) string {
	s := fmt.Sprint(n)

	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}

	return s
}
