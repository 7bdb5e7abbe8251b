package balance

import (
	"errors"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// Analysis keeps every intermediate of a PFD check. Fields after the failing
// stage are zero.
type Analysis struct {
	Stranded  []pfd.UnitID
	Recycles  [][]pfd.UnitID
	Lattice   *algorithms.Lattice
	Matches   *Matches
	Verdict   Verdict
	Subgraphs []SubgraphVerdict
	Result    feedback.Result
}

// Analyze runs connectivity, abstraction, matching and independence counting
// over d. d is only read; synthetic units come from a clone of its
// allocator. Structural problems end up in Analysis.Result; the error is only
// set for internal inconsistencies such as a compound missing from catalog.
func Analyze(eqs []*equations.Equation, d *pfd.Diagram, lookup *pfd.Lookup, catalog *chemistry.Catalog, opts algorithms.Options) (*Analysis, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	an := &Analysis{}
	first := feedback.Diagram()
	if len(eqs) > 0 {
		first = feedback.Equation(eqs[0].Ref)
	}

	g := d.Graph()
	if an.Stranded = algorithms.Stranded(g); len(an.Stranded) > 0 {
		labels := make([]string, 0, len(an.Stranded))
		for _, id := range an.Stranded {
			u, _ := g.Unit(id)
			labels = append(labels, u.Label)
		}
		an.Result = feedback.New(feedback.Unit(labels[0]), feedback.PFDNotConnected, labels...)
		logger.Info("diagram not connected", logging.Count(len(labels)))
		return an, nil
	}

	if an.Recycles = algorithms.RecycleLoops(g); len(an.Recycles) > 0 {
		logger.Debug("recycle loops found", logging.Count(len(an.Recycles)))
	}

	lattice, err := algorithms.CreateAbstractedPFD(g, d.Allocator().Clone(), opts)
	if err != nil {
		return nil, err
	}
	an.Lattice = lattice

	matches, err := MatchEquationsToAbstractedGraphs(eqs, lattice, lookup)
	if err != nil {
		var me *MatchError
		if errors.As(err, &me) && !errors.Is(err, pfd.ErrUnknownUnit) {
			an.Result = feedback.New(feedback.Equation(me.Equation), feedback.EquationDoesntMatchPFD)
			logger.Info("equation does not match diagram", logging.Equation(me.Equation), logging.Error(me.Reason))
			return an, nil
		}
		return nil, err
	}
	an.Matches = matches

	verdict, subgraphs, err := AreEquationsIndependent(matches, d, catalog)
	if err != nil {
		return nil, err
	}
	an.Verdict = verdict
	an.Subgraphs = subgraphs
	an.Result = feedback.New(first, verdict.Key())
	logger.Debug("independence counted",
		logging.Count(matches.Len()), logging.MessageKey(verdict.Key().String()))
	return an, nil
}

// CheckEquationsAgainstPFD returns the single structural result for eqs:
// PFD_not_connected, Equation_doesnt_match_PFD, or the independence verdict.
func CheckEquationsAgainstPFD(eqs []*equations.Equation, d *pfd.Diagram, lookup *pfd.Lookup, catalog *chemistry.Catalog, opts algorithms.Options) ([]feedback.Result, error) {
	an, err := Analyze(eqs, d, lookup, catalog, opts)
	if err != nil {
		return nil, err
	}
	return []feedback.Result{an.Result}, nil
}
