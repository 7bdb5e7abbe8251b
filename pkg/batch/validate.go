// Package batch validates many problem files concurrently.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/document"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/rules"
)

// Outcome is the result of validating one file. Err covers load failures,
// cancellation and internal errors; user feedback is in Report.
type Outcome struct {
	Path    string
	Problem *document.Problem
	Report  *rules.Report
	Err     error
}

// Summary counts outcomes by kind. Elapsed sums the report durations.
type Summary struct {
	Files   int
	Valid   int
	Invalid int
	Failed  int
	Elapsed time.Duration
}

// ValidateFiles loads and validates every path on a pool of workers. The
// outcomes keep the order of paths. Files not started before ctx is done get
// the context error.
func ValidateFiles(ctx context.Context, mgr *rules.Manager, paths []string, workers int, logger logging.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	pool, err := NewPool(workers, logger)
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(logger.With(logging.Component("batch")), "batch validation", logging.Count(len(paths)))
	outcomes := make([]Outcome, len(paths))
	for i, path := range paths {
		outcomes[i].Path = path
		out := &outcomes[i]
		submitted := pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					out.Err = fmt.Errorf("validate %s: panic: %v", out.Path, r)
				}
			}()
			out.Problem, out.Report, out.Err = validateFile(ctx, mgr, out.Path)
		})
		if !submitted {
			out.Err = fmt.Errorf("validate %s: pool closed", path)
		}
	}
	pool.Close()

	s := Summarize(outcomes)
	timer.End(logging.Int("valid", s.Valid), logging.Int("invalid", s.Invalid), logging.Int("failed", s.Failed))
	return outcomes, nil
}

func validateFile(ctx context.Context, mgr *rules.Manager, path string) (*document.Problem, *rules.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("validate %s: %w", path, err)
	}
	problem, err := document.LoadProblem(path)
	if err != nil {
		return nil, nil, err
	}
	report, err := mgr.Validate(ctx, problem.Diagram, problem.Equations)
	if err != nil {
		return problem, nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return problem, report, nil
}

// Summarize counts valid, invalid and failed outcomes
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Files: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			s.Failed++
		case o.Report.Valid:
			s.Valid++
		default:
			s.Invalid++
		}
		if o.Report != nil {
			s.Elapsed += o.Report.Duration
		}
	}
	return s
}
