package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers Select calls from a fixed list of indexes.
type scripted struct {
	selects []int
	labels  [][]string
}

func (s *scripted) Select(_ string, items []string) (int, error) {
	s.labels = append(s.labels, items)

	if len(s.selects) == 0 {
		return 0, errors.New("no more answers")
	}

	idx := s.selects[0]
	s.selects = s.selects[1:]

	return idx, nil
}

func (s *scripted) Confirm(string) (bool, error) { return false, nil }

func (s *scripted) Int(string, int, int) (int, error) { return 0, nil }

func TestIntValidator(t *testing.T) {
	t.Parallel()

	validate := intValidator(0, 8)

	require.NoError(t, validate("0"))
	require.NoError(t, validate(" 8 "))
	require.ErrorIs(t, validate("9"), ErrOutOfRange)
	require.ErrorIs(t, validate("-1"), ErrOutOfRange)
	require.Error(t, validate("seven"))
	require.Error(t, validate(""))
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	v, err := parseInt("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = parseInt("4.2")
	require.Error(t, err)
}

func TestPrefixSearcher(t *testing.T) {
	t.Parallel()

	search := prefixSearcher([]string{"Bubble Sort", "Merge Sort"})

	assert.True(t, search("bub", 0))
	assert.False(t, search("bub", 1))
	assert.True(t, search("MERGE", 1))
	assert.False(t, search("", 0))
	assert.False(t, search("m", 5))
}

func TestNewTerminal(t *testing.T) {
	t.Parallel()

	term := &Terminal{}

	assert.NotNil(t, term.stdin())
	assert.NotNil(t, term.stdout())
	assert.NotNil(t, NewTerminal().In)
}
