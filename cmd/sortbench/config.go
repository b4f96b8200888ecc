package main

import (
	"errors"
	"fmt"

	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/envutil"
	"github.com/amp-labs/amp-sort/report"
)

// config holds the defaults for command-line flags, read from SORTBENCH_*
// environment variables.
type config struct {
	DataDir     string
	HistoryDir  string
	Workers     int
	MemoryLimit int64
	WordWidth   int
	Format      string
	Codec       string
}

func loadConfig() (config, error) {
	var errs []error

	read := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var (
		cfg config
		err error
	)

	cfg.DataDir, err = envutil.Path("SORTBENCH_DATA_DIR", envutil.Default(".")).Value()
	read(err)

	cfg.HistoryDir, err = envutil.Path("SORTBENCH_HISTORY_DIR", envutil.Default("~/.sortbench/history")).Value()
	read(err)

	cfg.Workers, err = envutil.Int[int]("SORTBENCH_WORKERS",
		envutil.Default(1), envutil.Positive[int]("SORTBENCH_WORKERS")).Value()
	read(err)

	cfg.MemoryLimit, err = envutil.Int[int64]("SORTBENCH_MEMORY_LIMIT", envutil.Default[int64](0)).Value()
	read(err)

	cfg.WordWidth, err = envutil.Int[int]("SORTBENCH_WORD_WIDTH",
		envutil.Default(dataset.DefaultWordWidth), envutil.Positive[int]("SORTBENCH_WORD_WIDTH")).Value()
	read(err)

	cfg.Format, err = envutil.String("SORTBENCH_FORMAT",
		envutil.Default(string(report.FormatTable)),
		envutil.OneOf("table", "text", "yaml", "yml", "json")).Value()
	read(err)

	cfg.Codec, err = envutil.String("SORTBENCH_CODEC",
		envutil.Default(dataset.Plain.String()),
		envutil.OneOf(codecNames()...)).Value()
	read(err)

	if len(errs) > 0 {
		return config{}, fmt.Errorf("reading configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func codecNames() []string {
	names := make([]string, 0, len(dataset.Codecs()))

	for _, c := range dataset.Codecs() {
		names = append(names, c.String())
	}

	return names
}
