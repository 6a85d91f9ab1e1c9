package corpus

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"zonewarden/internal/rules"
	"zonewarden/internal/types"
)

// Failure is one document that could not be parsed.
type Failure struct {
	Document string `json:"document"`
	Error    string `json:"error"`
}

// Report is the outcome of one full corpus run.
type Report struct {
	ID         uuid.UUID         `json:"id"`
	Started    time.Time         `json:"started"`
	Finished   time.Time         `json:"finished"`
	Documents  int               `json:"documents"`
	Failures   []Failure         `json:"failures,omitempty"`
	Violations []types.Violation `json:"violations,omitempty"`
}

// Clean reports whether the run found nothing wrong.
func (r *Report) Clean() bool {
	return len(r.Failures) == 0 && len(r.Violations) == 0
}

// Runner validates a whole corpus. Documents are independent of one another,
// so they are checked concurrently up to the configured limit; sequential
// and concurrent runs produce the same report.
type Runner struct {
	loader *Loader
	cache  *Cache
	limit  int
}

// NewRunner creates a Runner over the given corpus directory. limit bounds
// how many documents are validated concurrently; anything below 1 means one
// worker per CPU.
func NewRunner(dir string, limit int) *Runner {
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	loader := NewLoader(dir)
	return &Runner{
		loader: loader,
		cache:  NewCache(loader),
		limit:  limit,
	}
}

// Loader returns the runner's document loader.
func (r *Runner) Loader() *Loader {
	return r.loader
}

// Cache returns the runner's parse cache.
func (r *Runner) Cache() *Cache {
	return r.cache
}

// Validate parses and validates a single named document from the corpus.
func (r *Runner) Validate(name string) ([]types.Violation, error) {
	doc, err := r.cache.Get(name)
	if err != nil {
		return nil, err
	}
	return rules.Validate(doc), nil
}

// Run validates every document in the corpus. Results are assembled in name
// order, so a run's report is deterministic regardless of the worker limit.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		ID:      uuid.New(),
		Started: time.Now(),
	}

	names, err := r.loader.List()
	if err != nil {
		return nil, err
	}
	report.Documents = len(names)

	type outcome struct {
		failure    *Failure
		violations []types.Violation
	}
	outcomes := make([]outcome, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, name := range names {
		i, name := i, name // go.mod targets go 1.21: pre-1.22 loops share iteration variables
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := r.cache.Get(name)
			if err != nil {
				var docErr *DocumentError
				if errors.As(err, &docErr) {
					err = docErr.Err
				}
				outcomes[i] = outcome{failure: &Failure{Document: name, Error: err.Error()}}
				return nil
			}
			outcomes[i] = outcome{violations: rules.Validate(doc)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		if o.failure != nil {
			report.Failures = append(report.Failures, *o.failure)
		}
		report.Violations = append(report.Violations, o.violations...)
	}
	report.Finished = time.Now()

	slog.Info("corpus run finished",
		"id", report.ID,
		"documents", report.Documents,
		"failures", len(report.Failures),
		"violations", len(report.Violations),
		"elapsed", report.Finished.Sub(report.Started))
	return report, nil
}
