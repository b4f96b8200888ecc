package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amp-labs/amp-sort/bench"
	ampcli "github.com/amp-labs/amp-sort/cli"
	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/history"
	"github.com/amp-labs/amp-sort/report"
	"github.com/amp-labs/amp-sort/should"
	"github.com/segmentio/ksuid"
	"github.com/urfave/cli/v3"
)

const defaultListLimit = 20

// ErrMissingID is returned by history show when no run id is given.
var ErrMissingID = errors.New("missing run id")

func (a *app) historyCommand() *cli.Command {
	dirFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "history-dir", Value: a.cfg.HistoryDir, Usage: "history database directory"}
	}

	return &cli.Command{
		Name:  "history",
		Usage: "Show and manage saved runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved runs, newest first",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: defaultListLimit, Usage: "runs to show, 0 for all"},
				},
				Action: a.withHistory(a.historyList),
			},
			{
				Name:      "show",
				Usage:     "Show the results of a run",
				ArgsUsage: "<run id>",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: a.cfg.Format, Usage: "table, yaml or json"},
				},
				Action: a.withHistory(a.historyShow),
			},
			{
				Name:      "rm",
				Usage:     "Delete runs; without ids, choose them interactively",
				ArgsUsage: "[run id...]",
				Flags:     []cli.Flag{dirFlag()},
				Action:    a.withHistory(a.historyRemove),
			},
		},
	}
}

type historyAction func(ctx context.Context, cmd *cli.Command, store *history.Store) error

func (a *app) withHistory(action historyAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		store, err := history.Open(cmd.String("history-dir"), "")
		if err != nil {
			return err
		}

		defer should.Close(store, "closing history")

		return action(ctx, cmd, store)
	}
}

func (a *app) historyList(_ context.Context, cmd *cli.Command, store *history.Store) error {
	runs, err := store.List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		a.printf("No saved runs.\n")

		return nil
	}

	for _, run := range runs {
		a.printf("%s  %s  %-20s %s\n", run.ID, run.Created.Local().Format(time.DateTime), run.Host, summarize(run.Results))
	}

	return nil
}

func summarize(results []bench.Result) string {
	failed := 0

	for _, res := range results {
		if !res.OK() && res.Status != bench.StatusSkipped {
			failed++
		}
	}

	return fmt.Sprintf("%d cases, %d failed", len(results), failed)
}

func (a *app) historyShow(_ context.Context, cmd *cli.Command, store *history.Store) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: usage: sortbench history show <run id>", ErrMissingID)
	}

	id, err := history.ParseID(cmd.Args().First())
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	run, err := store.Get(id)
	if err != nil {
		return err
	}

	if format != report.FormatTable {
		return report.Write(a.out, format, "", run.Results)
	}

	for _, kind := range dataset.Kinds() {
		var results []bench.Result

		for _, res := range run.Results {
			if res.Dataset == kind {
				results = append(results, res)
			}
		}

		if len(results) == 0 {
			continue
		}

		if err := report.Table(a.out, report.Title(kind), results); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) historyRemove(_ context.Context, cmd *cli.Command, store *history.Store) error {
	names := cmd.Args().Slice()

	if len(names) == 0 {
		runs, err := store.List(0)
		if err != nil {
			return err
		}

		choices := make([]string, len(runs))
		for i, run := range runs {
			choices[i] = run.ID.String()
		}

		if names, err = ampcli.MultiSelect(a.prompter, "Runs to delete", choices...); err != nil {
			return err
		}
	}

	ids := make([]ksuid.KSUID, 0, len(names))

	for _, name := range names {
		id, err := history.ParseID(name)
		if err != nil {
			return err
		}

		ids = append(ids, id)
	}

	for _, id := range ids {
		if err := store.Delete(id); err != nil {
			return err
		}

		a.printf("Deleted run %s\n", id)
	}

	return nil
}
