package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amp-labs/amp-sort/closer"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownCodec is returned for a codec name, extension or value that is not supported.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec is the compression applied to a dataset file.
type Codec int

const (
	Plain Codec = iota
	Gzip
	Zstd
	LZ4
	Brotli
	Snappy
)

var codecExtensions = map[string]Codec{ //nolint:gochecknoglobals
	".gz":  Gzip,
	".zst": Zstd,
	".lz4": LZ4,
	".br":  Brotli,
	".sz":  Snappy,
}

// Codecs returns every codec, Plain first.
func Codecs() []Codec {
	return []Codec{Plain, Gzip, Zstd, LZ4, Brotli, Snappy}
}

// ParseCodec accepts a codec name ("zstd") or its extension (".zst", "zst").
func ParseCodec(name string) (Codec, error) {
	norm := strings.ToLower(strings.TrimSpace(name))

	for _, c := range Codecs() {
		if norm == c.String() || (c != Plain && strings.TrimPrefix(norm, ".") == c.Extension()[1:]) {
			return c, nil
		}
	}

	return Plain, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// CodecFor picks the codec from the file extension. Anything unrecognized is Plain.
func CodecFor(path string) Codec {
	if c, ok := codecExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return Plain
}

func (c Codec) String() string {
	switch c {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Brotli:
		return "brotli"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("Codec(%d)", int(c))
	}
}

// Extension returns the file extension for c, empty for Plain.
func (c Codec) Extension() string {
	for ext, codec := range codecExtensions {
		if codec == c {
			return ext
		}
	}

	return ""
}

// NewWriter compresses into w. Closing the result flushes the compressor but
// does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case Plain:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}

		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Brotli:
		return brotli.NewWriter(w), nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, int(c))
	}
}

// NewReader decompresses r. Closing the result releases the decompressor but
// does not close r.
func NewReader(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case Plain:
		return io.NopCloser(r), nil
	case Gzip:
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, int(c))
	}
}

// Create creates path for writing, compressed according to its extension.
// Closing the result flushes the compressor and closes the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	enc, err := NewWriter(f, CodecFor(path))
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	return closer.WriteCloser{Writer: enc, Closer: closer.NewCloser(enc, f)}, nil
}

// Open opens path for reading, decompressed according to its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := NewReader(f, CodecFor(path))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening %s: %w", path, err), f.Close())
	}

	return closer.ReadCloser{Reader: dec, Closer: closer.NewCloser(dec, f)}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
