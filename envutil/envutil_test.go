package envutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_DATASET", "words")

	assert.Equal(t, "words", String("SORTBENCH_TEST_DATASET").ValueOrFatal())
	assert.Equal(t, "numbers", String("SORTBENCH_TEST_UNSET", Default("numbers")).ValueOrFatal())

	_, err := String("SORTBENCH_TEST_UNSET").Value()
	require.ErrorIs(t, err, ErrEnvVarMissing)
}

func TestBool(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_BOOL", " true ")
	t.Setenv("SORTBENCH_TEST_BAD_BOOL", "maybe")

	assert.True(t, Bool("SORTBENCH_TEST_BOOL").ValueOrElse(false))

	rdr := Bool("SORTBENCH_TEST_BAD_BOOL", Default(false))
	assert.True(t, rdr.HasError())

	_, err := rdr.Value()
	require.ErrorIs(t, err, ErrBadEnvVar)
	assert.False(t, rdr.ValueOrElse(false))
}

func TestInt(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_COUNT", "2_000_000")
	t.Setenv("SORTBENCH_TEST_ZERO", "0")

	assert.Equal(t, 2000000, Int[int]("SORTBENCH_TEST_COUNT").ValueOrFatal())
	assert.Equal(t, int64(4), Int[int64]("SORTBENCH_TEST_UNSET", Default[int64](4)).ValueOrFatal())

	_, err := Int("SORTBENCH_TEST_ZERO", Positive[int]("SORTBENCH_TEST_ZERO")).Value()
	require.ErrorIs(t, err, ErrBadEnvVar)
}

func TestFloat64AndDuration(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_MB", "1.5")
	t.Setenv("SORTBENCH_TEST_TIMEOUT", "250ms")

	assert.InDelta(t, 1.5, Float64("SORTBENCH_TEST_MB").ValueOrFatal(), 1e-9)
	assert.Equal(t, 250*time.Millisecond, Duration("SORTBENCH_TEST_TIMEOUT").ValueOrFatal())
}

func TestSlogLevel(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_LEVEL", "DEBUG")

	assert.Equal(t, slog.LevelDebug, SlogLevel("SORTBENCH_TEST_LEVEL").ValueOrFatal())
	assert.Equal(t, slog.LevelInfo, SlogLevel("SORTBENCH_TEST_UNSET", Default(slog.LevelInfo)).ValueOrFatal())
}

func TestPath(t *testing.T) { //nolint:paralleltest
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SORTBENCH_TEST_DIR", "~/data/../bench")

	assert.Equal(t, filepath.Join(home, "bench"), Path("SORTBENCH_TEST_DIR").ValueOrFatal())
}

func TestOneOf(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTBENCH_TEST_FORMAT", "xml")

	rdr := String("SORTBENCH_TEST_FORMAT", OneOf("table", "json", "yaml"))
	assert.True(t, rdr.HasError())
	assert.Equal(t, "table", rdr.ValueOrElse("table"))
}

func TestMap(t *testing.T) {
	t.Parallel()

	rdr := Map(NewReader("SIZE", true, nil, "3"), func(s string) (int, error) {
		return len(s) * 10, nil
	})

	assert.Equal(t, 10, rdr.ValueOrFatal())
	assert.Equal(t, "SIZE=10", rdr.String())

	missing := Map(NewReader("SIZE", false, nil, ""), func(string) (int, error) {
		t.Fatal("must not be called")

		return 0, nil
	})

	assert.False(t, missing.HasValue())
	assert.Equal(t, "SIZE=<not set>", missing.String())
}
