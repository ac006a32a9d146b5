// Package dataset implements line-indexed random access to JSON-lines files.
//
// A Dataset is opened once per session: the file is scanned a single time to
// build a byte-offset index, after which any record can be fetched in one
// ReadAt regardless of how many lookups came before it. Records are decoded
// lazily, one line at a time; a malformed line only fails lookups of that
// line.
//
// Blank lines (whitespace-only) are skipped during indexing and excluded
// from the record count. Physical line numbers are preserved so decode
// errors can name the offending line in the source file.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/vvka-141/jlb/pkg/jlb"
)

// indexBufferSize is the read buffer used for the initial scan.
// JSON-lines records routinely exceed bufio's default 4 KiB.
const indexBufferSize = 256 * 1024

// span locates one indexed record in the underlying file.
type span struct {
	offset int64
	length int
	line   int // 1-based physical line number
}

// Dataset provides random access to the records of a JSON-lines file.
// It owns the open file handle for the duration of a session and is not
// safe for concurrent use.
type Dataset struct {
	path  string
	f     *os.File
	spans []span
	intn  func(n int) int
}

// Option configures a Dataset at Open time.
type Option func(*Dataset)

// WithIntN replaces the random source used by GetRandom.
// The function must return a uniform value in [0, n). Used by tests
// and by the --seed flag for reproducible sessions.
func WithIntN(intn func(n int) int) Option {
	return func(d *Dataset) {
		d.intn = intn
	}
}

// WithSeed derives a deterministic random source from seed.
func WithSeed(seed uint64) Option {
	return func(d *Dataset) {
		rng := rand.New(rand.NewPCG(seed, seed))
		d.intn = rng.IntN
	}
}

// Open opens the JSON-lines file at path and builds the record index.
// The returned Dataset holds the file open; callers must Close it.
//
// A missing file fails wrapping jlb.ErrDatasetNotFound; any other I/O
// failure wraps jlb.ErrReadFailed. Lines are not JSON-decoded here.
func Open(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, jlb.ErrDatasetNotFound)
		}
		return nil, fmt.Errorf("open %s: %v: %w", path, err, jlb.ErrReadFailed)
	}

	d := &Dataset{
		path: path,
		f:    f,
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.index(); err != nil {
		f.Close()
		return nil, err
	}

	return d, nil
}

// index scans the file once, recording the offset, length, and physical
// line number of every non-blank line.
func (d *Dataset) index() error {
	r := bufio.NewReaderSize(d.f, indexBufferSize)

	var offset int64
	line := 0
	for {
		raw, err := r.ReadBytes('\n')
		if len(raw) > 0 {
			line++
			payload := bytes.TrimRight(raw, "\r\n")
			if len(bytes.TrimSpace(payload)) > 0 {
				d.spans = append(d.spans, span{
					offset: offset,
					length: len(payload),
					line:   line,
				})
			}
			offset += int64(len(raw))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan %s: %v: %w", d.path, err, jlb.ErrReadFailed)
		}
	}
}

// Path returns the path the Dataset was opened from.
func (d *Dataset) Path() string {
	return d.path
}

// Count returns the number of indexed records.
// Blank lines in the source file are not counted.
func (d *Dataset) Count() int {
	return len(d.spans)
}

// Line returns the 1-based physical line number of the record at index.
// Panics if index is out of range; callers are expected to have validated
// the index through Get or Raw first.
func (d *Dataset) Line(index int) int {
	return d.spans[index].line
}

// Raw returns the exact bytes of the record at index, without the
// trailing newline and without decoding.
func (d *Dataset) Raw(index int) ([]byte, error) {
	if index < 0 || index >= len(d.spans) {
		return nil, fmt.Errorf("record %d outside [0, %d): %w", index, len(d.spans), jlb.ErrIndexOutOfRange)
	}

	sp := d.spans[index]
	buf := make([]byte, sp.length)
	if _, err := d.f.ReadAt(buf, sp.offset); err != nil {
		return nil, fmt.Errorf("read record %d of %s: %v: %w", index, d.path, err, jlb.ErrReadFailed)
	}
	return buf, nil
}

// Get returns the decoded record at index.
//
// An index outside [0, Count) fails wrapping jlb.ErrIndexOutOfRange.
// A line that is not valid JSON fails wrapping jlb.ErrDecodeFailed and
// names the physical line number; records on other lines are unaffected.
func (d *Dataset) Get(index int) (jlb.Record, error) {
	raw, err := d.Raw(index)
	if err != nil {
		return nil, err
	}

	var rec jlb.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("line %d of %s is not valid JSON: %v: %w",
			d.spans[index].line, d.path, err, jlb.ErrDecodeFailed)
	}
	return rec, nil
}

// GetRandom draws an index uniformly from [0, Count) and returns it
// together with the decoded record, so callers can display which record
// was selected. Fails on an empty dataset.
func (d *Dataset) GetRandom() (int, jlb.Record, error) {
	if len(d.spans) == 0 {
		return 0, nil, fmt.Errorf("dataset %s has no records: %w", d.path, jlb.ErrIndexOutOfRange)
	}

	index := d.intn(len(d.spans))
	rec, err := d.Get(index)
	if err != nil {
		return index, nil, err
	}
	return index, rec, nil
}

// Close releases the underlying file handle.
func (d *Dataset) Close() error {
	return d.f.Close()
}
