package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Stage
	}{
		{"local", Local},
		{"TEST", Test},
		{" ci ", CI},
		{"Lab", Lab},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("prod")
	require.ErrorIs(t, err, ErrUnrecognizedStage)
}

//nolint:paralleltest // modifies the process environment
func TestGetRunningStage(t *testing.T) {
	t.Setenv(Key, "lab")
	assert.Equal(t, Lab, getRunningStage())

	t.Setenv(Key, "moon")
	assert.Equal(t, Test, getRunningStage())

	t.Setenv(Key, "")
	assert.Equal(t, Test, getRunningStage())
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Stages(), Current())
}
