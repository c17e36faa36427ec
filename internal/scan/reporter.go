package scan

import (
	"sort"
	"sync"
)

// FileResult is the outcome of checking one input.
type FileResult struct {
	// Index is the position of the input in the original argument list,
	// used to keep output order stable under concurrent checking.
	Index int

	// File is the rendered input name ("stdin" for standard input).
	File string

	Violations []Violation

	// Err is an operational failure: unreadable or unparsable input.
	// Never set together with Violations.
	Err error
}

// Reporter collects results of independent scans. Safe for concurrent use:
// failures and findings on one input never affect the others.
type Reporter struct {
	mu      sync.Mutex
	results []FileResult
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(res FileResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

// Results returns a snapshot of all collected records in arrival order.
func (r *Reporter) Results() []FileResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FileResult, len(r.results))
	copy(out, r.results)

	return out
}

// Sorted returns a snapshot ordered by input index, i.e. by the original
// argument order regardless of scan completion order.
func (r *Reporter) Sorted() []FileResult {
	out := r.Results()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})

	return out
}
