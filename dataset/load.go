package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/amp-labs/amp-sort/compare"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/should"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	// sniffSize is how much input is inspected to decide whether it needs decoding.
	sniffSize = 4096

	// cancelCheckInterval is how many records are read between context checks.
	cancelCheckInterval = 1 << 16
)

// LoadNumbers reads up to count whitespace-separated integers from r. A count
// of zero or less reads everything. Input that ends early is not an error: the
// values that were present are returned and a warning is logged.
func LoadNumbers(ctx context.Context, r io.Reader, count int) (*Numbers, error) {
	s := &Numbers{records{size: NumberSize, cmp: compare.Int32}}
	if count > 0 {
		s.data = make([]byte, 0, count*NumberSize)
	}

	err := scan(ctx, r, count, KindNumbers, func(tok []byte) error {
		v, err := strconv.ParseInt(string(tok), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformed, s.n+1, err)
		}

		s.append(int32(v))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// LoadWords reads up to count whitespace-separated words from r into records of
// width bytes (DefaultWordWidth if width is zero or less). A count of zero or
// less reads everything. Input that is not UTF-8 has its charset detected and is
// decoded first. Input that ends early is not an error, as with LoadNumbers.
func LoadWords(ctx context.Context, r io.Reader, count, width int) (*Words, error) {
	s := newWords(max(count, 0), width)

	decoded, err := toUTF8(ctx, r)
	if err != nil {
		return nil, err
	}

	err = scan(ctx, decoded, count, KindWords, func(tok []byte) error {
		return s.append(string(tok))
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Load opens path (decompressing by extension) and loads count records of kind.
func Load(ctx context.Context, path string, kind Kind, count, width int) (Set, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}

	defer should.Close(f, "closing dataset "+path)

	ctx = logger.With(ctx, "path", path)

	switch kind {
	case KindNumbers:
		return LoadNumbers(ctx, f, count)
	case KindWords:
		return LoadWords(ctx, f, count, width)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

func scan(ctx context.Context, r io.Reader, count int, kind Kind, record func([]byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	read := 0

	for count <= 0 || read < count {
		if read%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("reading %s: %w", kind, err)
			}

			if count > 0 {
				logger.Get(ctx).Warn("End of file reached early",
					"kind", kind.String(), "read", read, "wanted", count)
			}

			return nil
		}

		if err := record(sc.Bytes()); err != nil {
			return err
		}

		read++
	}

	return nil
}

// toUTF8 returns r unchanged when its first bytes are valid UTF-8, and otherwise
// a reader that decodes from the detected charset.
func toUTF8(ctx context.Context, r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	sample, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if utf8.Valid(trimPartialRune(sample)) {
		return br, nil
	}

	best, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		logger.Get(ctx).Warn("Could not detect charset, reading as UTF-8", "error", err)

		return br, nil
	}

	decoded, err := charset.NewReaderLabel(best.Charset, br)
	if err != nil {
		logger.Get(ctx).Warn("Unsupported charset, reading as UTF-8", "charset", best.Charset, "error", err)

		return br, nil
	}

	logger.Get(ctx).Info("Decoding words", "charset", best.Charset, "confidence", best.Confidence)

	return decoded, nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}

			return b
		}
	}

	return b
}
