// Package scan streams a FASTA database through a pool of workers that score
// every sequence against a set of PSSMs and keep the significant ones.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/RBVI/dasp3/internal/search"
)

const (
	// DefaultWorkers is the number of scoring goroutines
	DefaultWorkers = 2

	// DefaultQueueSize is the number of read records waiting for a worker
	DefaultQueueSize = 1000

	// DefaultThreshold is the combined p-value a sequence has to beat
	DefaultThreshold = 1e-50

	// DefaultTimeout is the longest a scan is waited on
	DefaultTimeout = 7 * 24 * time.Hour
)

var (
	// ErrIO is returned when the database can't be read.
	ErrIO = errors.New("failed to read database")

	// ErrMalformedRecord is returned for a record that isn't valid FASTA.
	ErrMalformedRecord = fmt.Errorf("%w: malformed record", ErrIO)

	// ErrConcurrency is returned when a scan is interrupted before every
	// record is scored.
	ErrConcurrency = errors.New("scan interrupted")

	// ErrTimeout is returned when the workers don't finish within the timeout.
	ErrTimeout = fmt.Errorf("%w: timed out", ErrConcurrency)
)

// Options are the settings of a Scanner. Zero values are replaced by the
// defaults.
type Options struct {
	// Workers is the number of goroutines scoring sequences
	Workers int

	// QueueSize is the capacity of the queue between the reader and workers
	QueueSize int

	// Threshold is the combined p-value below which a sequence is kept
	Threshold float64

	// IncludeX is whether the matrices score the ambiguous residue
	IncludeX bool

	// Timeout bounds the whole scan
	Timeout time.Duration

	// OnScanned is called by a worker after each protein sequence is scored.
	// It has to be safe for concurrent use.
	OnScanned func(accepted bool)
}

// Stats are the record counts of a scan.
type Stats struct {
	// Read is the number of records read from the database
	Read int64 `json:"read"`

	// Skipped is the number of records without a residue that marks a
	// protein: nucleic acids and fully unresolved sequences
	Skipped int64 `json:"skipped"`

	// Scored is the number of protein sequences scored
	Scored int64 `json:"scored"`

	// Accepted is the number of sequences below the threshold
	Accepted int64 `json:"accepted"`
}

// Result is the outcome of a scan.
type Result struct {
	// Verdicts of the accepted sequences, in database order
	Verdicts []search.Verdict

	// Stats of the scan
	Stats Stats
}

// Scanner scores databases against a fixed set of matrices.
type Scanner struct {
	searcher *search.Searcher
	opts     Options
}

// New returns a Scanner for the matrices. Placements are claimed, and
// matches reported, in the order of matrices.
func New(matrices []*pssm.Matrix, opts Options) (*Scanner, error) {
	if opts.Workers == 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize == 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	switch {
	case opts.Workers < 0:
		return nil, fmt.Errorf("%w: %d workers", pssm.ErrInput, opts.Workers)
	case opts.QueueSize < 0:
		return nil, fmt.Errorf("%w: queue size of %d", pssm.ErrInput, opts.QueueSize)
	case opts.Threshold < 0:
		return nil, fmt.Errorf("%w: threshold of %g", pssm.ErrInput, opts.Threshold)
	case opts.Timeout < 0:
		return nil, fmt.Errorf("%w: timeout of %s", pssm.ErrInput, opts.Timeout)
	}

	for _, m := range matrices {
		if m.IncludesAmbiguous() != opts.IncludeX {
			return nil, fmt.Errorf("%w: matrix %s doesn't match the X setting", pssm.ErrInput, m.Name)
		}
	}

	searcher, err := search.NewSearcher(matrices)
	if err != nil {
		return nil, err
	}

	return &Scanner{searcher: searcher, opts: opts}, nil
}

// Matrices returns the matrices in the order matches are reported.
func (s *Scanner) Matrices() []*pssm.Matrix {
	return s.searcher.Matrices()
}

// ScanFile scans the FASTA database at path.
func (s *Scanner) ScanFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return s.Scan(ctx, f)
}

// Scan reads every record from r and scores the protein sequences. A
// malformed record, a scoring error, cancellation of ctx or the timeout stop
// the scan and no verdicts are returned.
func (s *Scanner) Scan(ctx context.Context, r io.Reader) (*Result, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var (
		stats struct{ read, skipped, scored, accepted atomic.Int64 }

		mu       sync.Mutex
		verdicts []search.Verdict
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()

		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	records := make(chan record, s.opts.QueueSize)

	go func() {
		defer close(records)

		in := newReader(r)
		for {
			rec, err := in.read()
			if err == io.EOF {
				return
			}
			if err != nil {
				fail(err)
				return
			}
			stats.read.Add(1)

			select {
			case records <- rec:
			case <-scanCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for rec := range records {
				if scanCtx.Err() != nil {
					continue // drain
				}

				seq, ok := search.NewSequence(rec.name, rec.residues)
				if !ok {
					stats.skipped.Add(1)
					continue
				}

				v, hit, err := s.searcher.Score(rec.index, seq)
				if err != nil {
					fail(fmt.Errorf("failed to score %s: %w", rec.name, err))
					continue
				}
				stats.scored.Add(1)

				accepted := hit && search.Significant(v.PValue, s.opts.Threshold)
				if accepted {
					stats.accepted.Add(1)

					mu.Lock()
					verdicts = append(verdicts, v)
					mu.Unlock()
				}

				if s.opts.OnScanned != nil {
					s.opts.OnScanned(accepted)
				}
			}
		}()
	}

	// a worker stuck past the timeout is abandoned
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-scanCtx.Done():
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}

	mu.Lock()
	defer mu.Unlock()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := scanCtx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, s.opts.Timeout)
		}
		return nil, fmt.Errorf("%w: %w", ErrConcurrency, err)
	}

	sort.Slice(verdicts, func(i, j int) bool {
		return verdicts[i].Index < verdicts[j].Index
	})

	return &Result{
		Verdicts: verdicts,
		Stats: Stats{
			Read:     stats.read.Load(),
			Skipped:  stats.skipped.Load(),
			Scored:   stats.scored.Load(),
			Accepted: stats.accepted.Load(),
		},
	}, nil
}
