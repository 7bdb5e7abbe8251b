package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/batch"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/metrics"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/rules"
)

// validateOutput is the JSON form of a validation run
type validateOutput struct {
	File    string            `json:"file"`
	Title   string            `json:"title,omitempty"`
	ID      string            `json:"id,omitempty"`
	Valid   bool              `json:"valid"`
	Error   string            `json:"error,omitempty"`
	Results []feedback.Result `json:"results"`
}

func (a *app) validateCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check the equations of problems against their diagrams",
		Long: `Runs the table, equation and diagram rules over each problem file and
prints the feedback. Several files are validated concurrently. JSON output is
one object for a single file and an array otherwise.

Exits non-zero when any file cannot be read or any result is an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, args, workers)
		},
	}
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics in text format to this file")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of files validated at once")
	return cmd
}

func (a *app) validate(cmd *cobra.Command, paths []string, workers int) error {
	opts := []rules.Option{
		rules.WithCatalog(a.catalog),
		rules.WithLogger(a.logger),
		rules.WithDownstreamOnly(a.cfg.DownstreamOnly),
	}
	var reg *metrics.Registry
	if a.cfg.MetricsFile != "" {
		reg = metrics.NewRegistry()
		opts = append(opts, rules.WithMetrics(reg))
	}

	outcomes, err := batch.ValidateFiles(cmd.Context(), rules.NewManager(opts...), paths, workers, a.logger)
	if err != nil {
		return err
	}
	if reg != nil {
		if err := reg.WriteToTextfile(a.cfg.MetricsFile); err != nil {
			return err
		}
	}

	// A single unreadable file is a plain command error
	if len(outcomes) == 1 && outcomes[0].Err != nil {
		return outcomes[0].Err
	}

	if err := a.printOutcomes(cmd, outcomes); err != nil {
		return err
	}

	s := batch.Summarize(outcomes)
	switch {
	case s.Failed > 0:
		return fmt.Errorf("%d of %d files could not be validated", s.Failed, s.Files)
	case s.Invalid > 0:
		return errInvalid
	}
	return nil
}

func (a *app) printOutcomes(cmd *cobra.Command, outcomes []batch.Outcome) error {
	out := cmd.OutOrStdout()
	if a.cfg.Format == config.FormatJSON {
		docs := make([]validateOutput, 0, len(outcomes))
		for _, o := range outcomes {
			docs = append(docs, toOutput(o))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(docs) == 1 {
			return enc.Encode(docs[0])
		}
		return enc.Encode(docs)
	}

	p := printer{w: out}
	for _, o := range outcomes {
		if o.Err != nil {
			p.header(o.Path)
			p.failure(o.Err)
			continue
		}
		title := o.Problem.Title
		if title == "" {
			title = o.Path
		}
		p.header(title)
		for _, r := range o.Report.Results {
			p.result(r)
		}
		p.step(fmt.Sprintf("%d equations checked in %s", len(o.Problem.Equations), o.Report.Duration))
	}

	if len(outcomes) > 1 {
		s := batch.Summarize(outcomes)
		p.info(fmt.Sprintf("%d files: %d valid, %d invalid, %d failed", s.Files, s.Valid, s.Invalid, s.Failed))
	}
	return nil
}

func toOutput(o batch.Outcome) validateOutput {
	v := validateOutput{File: o.Path, Results: []feedback.Result{}}
	if o.Err != nil {
		v.Error = o.Err.Error()
		return v
	}
	v.Title = o.Problem.Title
	v.ID = o.Report.ID.String()
	v.Valid = o.Report.Valid
	v.Results = o.Report.Results
	return v
}
