package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/document"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// subgraphOutput is one abstracted graph with labels instead of IDs
type subgraphOutput struct {
	Level    int      `json:"level"`
	Units    []string `json:"units"`
	Incoming []string `json:"incoming"`
	Outgoing []string `json:"outgoing"`
}

func (a *app) abstractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abstract FILE",
		Short: "Print the abstraction lattice of a problem's diagram",
		Long: `Lists every subgraph the abstraction engine builds, level by level: the
units merged into the abstracted unit and the streams crossing its boundary,
named by the first row label of their table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := document.LoadProblem(args[0])
			if err != nil {
				return err
			}
			d := problem.Diagram
			g := d.Graph()

			if comps := algorithms.Components(g); len(comps) > 1 {
				groups := make([]string, 0, len(comps))
				for _, c := range comps {
					groups = append(groups, "{"+strings.Join(d.UnitLabels(c), " ")+"}")
				}
				printer{w: cmd.ErrOrStderr()}.info("diagram is not connected: " + strings.Join(groups, " "))
			}

			for _, loop := range algorithms.RecycleLoops(g) {
				printer{w: cmd.ErrOrStderr()}.info("recycle loop: " + strings.Join(d.UnitLabels(loop), " "))
			}

			lattice, err := algorithms.CreateAbstractedPFD(g, d.Allocator().Clone(), algorithms.Options{
				DownstreamOnly: a.cfg.DownstreamOnly,
				Logger:         a.logger,
			})
			if err != nil {
				return err
			}

			subgraphs := describeLattice(d, lattice)
			out := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(subgraphs)
			}

			p := printer{w: out}
			level := 0
			for _, s := range subgraphs {
				if s.Level != level {
					level = s.Level
					p.header(fmt.Sprintf("Level %d", level))
				}
				p.step(fmt.Sprintf("{%s}  in: %s  out: %s",
					strings.Join(s.Units, " "), strings.Join(s.Incoming, " "), strings.Join(s.Outgoing, " ")))
			}
			p.info(fmt.Sprintf("%d subgraphs", len(subgraphs)))
			return nil
		},
	}
}

func describeLattice(d *pfd.Diagram, l *algorithms.Lattice) []subgraphOutput {
	sums := l.Summaries()
	out := make([]subgraphOutput, 0, len(sums))
	for _, s := range sums {
		out = append(out, subgraphOutput{
			Level:    s.Level,
			Units:    d.UnitLabels(s.Absorbed),
			Incoming: d.TableLabels(s.Boundary.Incoming),
			Outgoing: d.TableLabels(s.Boundary.Outgoing),
		})
	}
	return out
}
