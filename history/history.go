// Package history keeps benchmark runs on disk so they can be listed and
// compared later. Runs are stored in a Pebble database under time-ordered
// KSUID keys.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amp-labs/amp-sort/bench"
	"github.com/amp-labs/amp-sort/should"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

var (
	// ErrNotFound is returned when no run has the requested id.
	ErrNotFound = errors.New("run not found")

	// ErrInvalidID is returned by ParseID for strings that are not KSUIDs.
	ErrInvalidID = errors.New("invalid run id")

	// ErrClosed is returned by every method called after Close.
	ErrClosed = errors.New("history is closed")
)

var (
	runPrefix = []byte("run/")
	runUpper  = []byte("run0") // '0' follows '/'
)

// Run is one stored benchmark invocation.
type Run struct {
	ID      ksuid.KSUID    `json:"id"`
	Created time.Time      `json:"created"`
	Host    string         `json:"host,omitempty"`
	Results []bench.Result `json:"results"`
}

// Store is a history database. Its methods may be called concurrently,
// except Close.
type Store struct {
	db    *pebble.DB
	newID func() ksuid.KSUID
	host  string

	mu     sync.Mutex
	lastID ksuid.KSUID
}

// Open opens or creates the history database in the directory at path.
func Open(path string, host string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening history at %s: %w", path, err)
	}

	last, err := newestID(db)
	if err != nil {
		should.Close(db, "closing history")

		return nil, err
	}

	return &Store{db: db, newID: ksuid.New, host: host, lastID: last}, nil
}

// newestID returns the largest stored run id, or ksuid.Nil for an empty store.
func newestID(db *pebble.DB) (ksuid.KSUID, error) {
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: runPrefix,
		UpperBound: runUpper,
	})
	if err != nil {
		return ksuid.Nil, fmt.Errorf("reading history: %w", err)
	}

	defer should.Close(iter, "closing history iterator")

	if !iter.Last() {
		return ksuid.Nil, nil
	}

	id, err := ParseID(string(bytes.TrimPrefix(iter.Key(), runPrefix)))
	if err != nil {
		return ksuid.Nil, err
	}

	return id, nil
}

// nextID returns an id that sorts after every id this store has handed out.
// KSUIDs only order by the second, so ids made within the same second are
// bumped past the previous one.
func (s *Store) nextID() ksuid.KSUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if ksuid.Compare(id, s.lastID) <= 0 {
		id = s.lastID.Next()
	}

	s.lastID = id

	return id
}

func key(id ksuid.KSUID) []byte {
	return append(bytes.Clone(runPrefix), id.String()...)
}

// ParseID parses the string form of a run id.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %q: %w", ErrInvalidID, s, err)
	}

	return id, nil
}

// Save stores results as a new run.
func (s *Store) Save(results []bench.Result) (Run, error) {
	if s.db == nil {
		return Run{}, ErrClosed
	}

	id := s.nextID()
	run := Run{
		ID:      id,
		Created: id.Time(),
		Host:    s.host,
		Results: results,
	}

	data, err := json.Marshal(run)
	if err != nil {
		return Run{}, fmt.Errorf("encoding run %s: %w", id, err)
	}

	if err := s.db.Set(key(id), data, pebble.Sync); err != nil {
		return Run{}, fmt.Errorf("saving run %s: %w", id, err)
	}

	return run, nil
}

// Get returns the run with the given id.
func (s *Store) Get(id ksuid.KSUID) (Run, error) {
	if s.db == nil {
		return Run{}, ErrClosed
	}

	data, closer, err := s.db.Get(key(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return Run{}, fmt.Errorf("reading run %s: %w", id, err)
	}

	defer should.Close(closer, "closing history value")

	return decode(data)
}

// List returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: runPrefix,
		UpperBound: runUpper,
	})
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	var runs []Run

	for valid := iter.Last(); valid; valid = iter.Prev() {
		if limit > 0 && len(runs) >= limit {
			break
		}

		run, err := decode(iter.Value())
		if err != nil {
			_ = iter.Close()

			return nil, err
		}

		runs = append(runs, run)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	return runs, nil
}

// Delete removes the run with the given id.
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.db.Delete(key(id), pebble.Sync); err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}

	return nil
}

// Close closes the database. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}

func decode(data []byte) (Run, error) {
	var run Run

	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("decoding run: %w", err)
	}

	return run, nil
}
