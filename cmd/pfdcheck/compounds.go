package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
)

func (a *app) compoundsCmd() *cobra.Command {
	var element string

	cmd := &cobra.Command{
		Use:   "compounds",
		Short: "List the compound catalog",
		Long: `Lists every compound with its abbreviation, composition and the heat
constants available for energy balances (Hf?? and Cp??).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compounds := make([]chemistry.Compound, 0, a.catalog.Len())
			for _, c := range a.catalog.Compounds() {
				if element == "" || c.Contains(element) {
					compounds = append(compounds, c)
				}
			}

			out := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(compounds)
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(stepStyle).
				Headers("NAME", "ABBR", "ELEMENTS", "Hf", "Cp")
			for _, c := range compounds {
				t.Row(c.Name, c.Abbr, composition(&c), constant(c.HeatFormation), constant(c.HeatCapacity))
			}
			fmt.Fprintln(out, t.Render())
			printer{w: out}.info(fmt.Sprintf("%d compounds", len(compounds)))
			return nil
		},
	}
	cmd.Flags().StringVar(&element, "element", "", "only list compounds containing this element")
	return cmd
}

func composition(c *chemistry.Compound) string {
	parts := make([]string, 0, len(c.Elements))
	for _, e := range c.ElementNames() {
		parts = append(parts, fmt.Sprintf("%s:%d", e, c.Elements[e]))
	}
	return strings.Join(parts, " ")
}

func constant(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
