package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/amp-labs/amp-sort/logger"
)

const (
	// DefaultCount is how many values the generators write by default.
	DefaultCount = 2_000_000

	// DefaultMaxNumber bounds generated numbers: they fall in [0, DefaultMaxNumber).
	DefaultMaxNumber = 2_000_000

	// DefaultMaxWordLength bounds generated words: they are 3 to
	// DefaultMaxWordLength-1 letters long.
	DefaultMaxWordLength = 20

	minWordLength = 3
	alphabet      = "abcdefghijklmnopqrstuvwxyz"
)

// GenerateNumbers writes count random integers in [0, maxValue), one per line.
func GenerateNumbers(ctx context.Context, w io.Writer, count, maxValue int, rng *rand.Rand) error {
	if maxValue <= 0 {
		return fmt.Errorf("%w: maximum value must be positive, got %d", ErrInvalidParam, maxValue)
	}

	var line []byte

	return generate(ctx, w, count, KindNumbers, func(bw *bufio.Writer) error {
		line = strconv.AppendInt(line[:0], int64(rng.IntN(maxValue)), 10)
		line = append(line, '\n')

		_, err := bw.Write(line)

		return err
	})
}

// GenerateWords writes count random lowercase words, one per line. Word length
// is uniform over [3, maxLen-1].
func GenerateWords(ctx context.Context, w io.Writer, count, maxLen int, rng *rand.Rand) error {
	if maxLen <= minWordLength {
		return fmt.Errorf("%w: maximum word length must exceed %d, got %d", ErrInvalidParam, minWordLength, maxLen)
	}

	word := make([]byte, 0, maxLen)

	return generate(ctx, w, count, KindWords, func(bw *bufio.Writer) error {
		length := rng.IntN(maxLen-minWordLength) + minWordLength

		word = word[:0]
		for range length {
			word = append(word, alphabet[rng.IntN(len(alphabet))])
		}

		word = append(word, '\n')

		_, err := bw.Write(word)

		return err
	})
}

// generate drives one line writer count times, logging progress every tenth
// and stopping early if ctx is canceled.
func generate(ctx context.Context, w io.Writer, count int, kind Kind, line func(*bufio.Writer) error) error {
	if count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidParam, count)
	}

	log := logger.Get(ctx)
	log.Info("Generating random "+kind.String(), "count", count)

	bw := bufio.NewWriter(w)
	step := max(count/10, 1) //nolint:mnd

	for i := range count {
		if i%step == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}

			log.Info("Progress", "kind", kind.String(), "percent", i*100/count) //nolint:mnd
		}

		if err := line(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}
