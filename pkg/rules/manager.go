package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/metrics"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// Manager runs rules in order and stops after the first one that reports
// anything.
type Manager struct {
	rules   []Rule
	catalog *chemistry.Catalog
	options algorithms.Options
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Manager
type Option func(*Manager)

// WithCatalog replaces the built-in compound catalog
func WithCatalog(c *chemistry.Catalog) Option {
	return func(m *Manager) { m.catalog = c }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics records every run in r
func WithMetrics(r *metrics.Registry) Option {
	return func(m *Manager) { m.metrics = r }
}

// WithDownstreamOnly restricts abstraction to downstream neighbours
func WithDownstreamOnly(on bool) Option {
	return func(m *Manager) { m.options.DownstreamOnly = on }
}

// NewManager creates a manager with the table, process unit, equation and
// diagram rules
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rules:   []Rule{TableRule{}, ProcessUnitRule{}, EquationRule{}, DiagramRule{}},
		catalog: chemistry.Default(),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics != nil {
		m.metrics.SetCatalogSize(m.catalog.Len())
	}
	return m
}

// AddRule appends a rule after the existing ones
func (m *Manager) AddRule(r Rule) {
	m.rules = append(m.rules, r)
}

// Rules returns the rules in run order
func (m *Manager) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// ClearRules removes all rules from the manager
func (m *Manager) ClearRules() {
	m.rules = make([]Rule, 0)
}

// Catalog returns the compound catalog used for checks
func (m *Manager) Catalog() *chemistry.Catalog { return m.catalog }

// Validate checks eqs against d. Feedback for the user is in the report; the
// error is set for cancellation and internal inconsistencies only.
func (m *Manager) Validate(ctx context.Context, d *pfd.Diagram, eqs []*equations.Equation) (*Report, error) {
	report := &Report{
		ID:        uuid.New(),
		CheckedAt: time.Now(),
		Valid:     true,
		Results:   make([]feedback.Result, 0),
	}
	log := m.logger.With(logging.Component("rules"), logging.RunID(report.ID.String()))
	timer := logging.StartTimer(log, "validation run", logging.Count(len(eqs)))

	lookup, duplicates := pfd.BuildLookup(d)
	opts := m.options
	opts.Logger = log
	in := &Input{
		Diagram:    d,
		Equations:  eqs,
		Lookup:     lookup,
		Duplicates: duplicates,
		Catalog:    m.catalog,
		Options:    opts,
	}

	for _, rule := range m.rules {
		if err := ctx.Err(); err != nil {
			m.fail(timer, err)
			return nil, fmt.Errorf("validation %s: %w", report.ID, err)
		}

		start := time.Now()
		results, err := rule.Check(ctx, in)
		if m.metrics != nil {
			m.metrics.RecordStage(rule.Name(), time.Since(start))
		}
		if err != nil {
			log.Error("rule failed", logging.String("rule", rule.Name()), logging.Error(err))
			m.fail(timer, err)
			return nil, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		if len(results) > 0 {
			log.Debug("rule reported", logging.String("rule", rule.Name()), logging.Count(len(results)))
			report.Results = append(report.Results, results...)
			break
		}
	}

	for _, r := range report.Results {
		if r.Severity == feedback.Error {
			report.Valid = false
		}
	}
	report.Analysis = in.Analysis
	report.Duration = timer.End(logging.Bool("valid", report.Valid), logging.Count(len(report.Results)))
	m.record(report, len(eqs))
	return report, nil
}

func (m *Manager) fail(timer *logging.TimedOperation, err error) {
	elapsed := timer.EndError(err)
	if m.metrics != nil {
		m.metrics.RecordRun(metrics.OutcomeError, elapsed)
	}
}

func (m *Manager) record(report *Report, checked int) {
	if m.metrics == nil {
		return
	}
	outcome := metrics.OutcomeValid
	if !report.Valid {
		outcome = metrics.OutcomeInvalid
	}
	m.metrics.RecordRun(outcome, report.Duration)
	m.metrics.RecordEquations(checked)
	for _, r := range report.Results {
		m.metrics.RecordResult(r.Key.String(), r.Severity.String())
	}

	an := report.Analysis
	if an == nil {
		return
	}
	if len(an.Stranded) > 0 {
		m.metrics.RecordDisconnected()
	}
	if an.Lattice != nil {
		m.metrics.RecordLattice(an.Lattice.Len(), len(an.Lattice.Levels()))
	}
	if an.Matches != nil {
		m.metrics.RecordVerdict(an.Verdict.String())
	}
}
