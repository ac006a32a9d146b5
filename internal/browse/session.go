// Package browse implements the interactive record-viewing session: a
// command-dispatch loop that resolves user selectors against an open
// dataset and prints the rendered records.
package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vvka-141/jlb/internal/dataset"
	"github.com/vvka-141/jlb/internal/render"
	"github.com/vvka-141/jlb/pkg/jlb"
)

// Session drives one interactive browse of a dataset.
//
// Input and output are injected so the loop can be exercised in tests
// with scripted stdin. Exactly one selector is consumed per prompt
// cycle; every error except end-of-input is reported and the loop
// continues.
type Session struct {
	ds       *dataset.Dataset
	renderer *render.Renderer
	in       io.Reader
	out      io.Writer
	logger   jlb.Logger
}

// NewSession creates a Session over an open dataset.
func NewSession(ds *dataset.Dataset, renderer *render.Renderer, in io.Reader, out io.Writer, logger jlb.Logger) *Session {
	return &Session{
		ds:       ds,
		renderer: renderer,
		in:       in,
		out:      out,
		logger:   logger,
	}
}

// Run executes the prompt loop until the user exits or input ends.
//
// Selector grammar (case-insensitive):
//   - a non-negative integer: show that record
//   - "random": show a uniformly chosen record
//   - "quit", "exit", "q": end the session
//
// Anything else is an invalid selector, reported without terminating
// the loop. Returns nil on a clean exit, including end-of-input.
func (s *Session) Run(ctx context.Context) error {
	count := s.ds.Count()
	fmt.Fprintf(s.out, "Indexed %d records in %s.\n", count, s.ds.Path())
	if count == 0 {
		fmt.Fprintln(s.out, s.renderer.Hint("The dataset is empty; only 'quit' will do anything useful."))
	}
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.out, "Enter record index (0..%d), 'random', or 'quit': ", count-1)
		if !scanner.Scan() {
			// End-of-input (^D or closed pipe) is a normal exit.
			fmt.Fprintln(s.out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %v: %w", err, jlb.ErrReadFailed)
			}
			return nil
		}

		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if input == "" {
			continue
		}

		if done := s.dispatch(input); done {
			return nil
		}
	}
}

// dispatch handles one selector. Returns true when the session should end.
func (s *Session) dispatch(input string) bool {
	switch input {
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting.")
		return true

	case "random":
		index, rec, err := s.ds.GetRandom()
		if err != nil {
			s.report(err)
			return false
		}
		s.logger.Verbose("selector %q resolved to record %d", input, index)
		s.show(index, rec)
		return false

	default:
		index, err := strconv.Atoi(input)
		if err != nil {
			s.report(fmt.Errorf("%q is not an index, 'random', or 'quit': %w", input, jlb.ErrInvalidSelector))
			return false
		}

		rec, err := s.ds.Get(index)
		if err != nil {
			s.report(err)
			return false
		}
		s.show(index, rec)
		return false
	}
}

func (s *Session) show(index int, rec jlb.Record) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.renderer.Header(index, s.ds.Line(index)))
	fmt.Fprintln(s.out, s.renderer.Record(rec))
	fmt.Fprintln(s.out)
}

func (s *Session) report(err error) {
	fmt.Fprintln(s.out, s.renderer.Errorf("%v", err))
	fmt.Fprintln(s.out)
}
