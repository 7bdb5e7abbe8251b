package semantics

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

func ptr(f float64) *float64 { return &f }

// testCatalog is the built-in catalog plus a compound abbreviated "12"
func testCatalog(t testing.TB) *chemistry.Catalog {
	t.Helper()
	compounds := append(chemistry.Default().Compounds(), chemistry.Compound{
		Name:          "test compound",
		Abbr:          "12",
		Elements:      map[string]int{"carbon": 1, "hydrogen": 2},
		HeatCapacity:  ptr(50),
		HeatFormation: ptr(-100),
	})
	c, err := chemistry.NewCatalog(compounds)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

// mixerChecker builds one mixer M:
//
//	feed at T1 (m1 overall, m11 water, x1 ethanol %) -> M -> product at 50 C
//	(m2 overall, m21 water, m22 ethanol, m23 ethanol kg)
//	extra (m3 test compound, a1 acetic acid, u1 unobtainium) -> M
//	heat Q1 -> M
func mixerChecker(t testing.TB) *Checker {
	t.Helper()
	d := pfd.NewDiagram()
	mix := d.AddUnit("mixer", "M")

	stream := func(kind pfd.StreamKind, from, to pfd.UnitID, temp string, rows ...pfd.Row) {
		s, err := d.AddStream(kind, from, to)
		if err != nil {
			t.Fatal(err)
		}
		if temp != "" {
			if err := d.SetTemperature(s, temp, "celsius"); err != nil {
				t.Fatal(err)
			}
		}
		for _, r := range rows {
			if err := d.AddRow(s, r); err != nil {
				t.Fatal(err)
			}
		}
	}
	stream(pfd.Chemical, 0, mix, "T1",
		pfd.Row{Label: "m1", Compound: "Overall", Quantity: "100", Units: "mol"},
		pfd.Row{Label: "m11", Compound: "water", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "x1", Compound: "ethanol", Quantity: "20", Units: pfd.UnsetUnits},
	)
	stream(pfd.Chemical, mix, 0, "50",
		pfd.Row{Label: "m2", Compound: "Overall", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "m21", Compound: "water", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "m22", Compound: "ethanol", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "m23", Compound: "ethanol", Quantity: "?", Units: "kg"},
	)
	stream(pfd.Chemical, 0, mix, "",
		pfd.Row{Label: "m3", Compound: "test compound", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "a1", Compound: "acetic acid", Quantity: "?", Units: "mol"},
		pfd.Row{Label: "u1", Compound: "unobtainium", Quantity: "?", Units: "mol"},
	)
	stream(pfd.Heat, 0, mix, "",
		pfd.Row{Label: "Q1", Compound: "Heat", Quantity: "?", Units: "kJ"},
	)

	lookup, dups := pfd.BuildLookup(d)
	if len(dups) > 0 {
		t.Fatalf("unexpected duplicate labels %v", dups)
	}
	return NewChecker(lookup, testCatalog(t))
}

func checkText(t testing.TB, c *Checker, text string, cls equations.Classification, target string) feedback.Result {
	t.Helper()
	eq, err := equations.Parse("e", text, equations.Type{Classification: cls, Target: target})
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	r, err := c.CheckRule(eq)
	if err != nil {
		t.Fatalf("CheckRule(%q) failed: %v", text, err)
	}
	return r
}

type ruleCase struct {
	name   string
	text   string
	cls    equations.Classification
	target string
	key    feedback.MessageKey
	args   []string
}

func runCases(t *testing.T, cases []ruleCase) {
	t.Helper()
	c := mixerChecker(t)
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			r := checkText(t, c, tt.text, tt.cls, tt.target)
			if r.Key != tt.key {
				t.Fatalf("%q: got %v %v, want %v", tt.text, r.Key, r.Args, tt.key)
			}
			if tt.args != nil && !slices.Equal(r.Args, tt.args) {
				t.Errorf("%q: args %v, want %v", tt.text, r.Args, tt.args)
			}
			if !r.IsEmpty() && r.Target != feedback.Equation("e") {
				t.Errorf("result targets %v, want equation e", r.Target)
			}
		})
	}
}

// TestCheckRule_Names lists every name that resolves to nothing
func TestCheckRule_Names(t *testing.T) {
	runCases(t, []ruleCase{
		{"unknown names", "m1 = zz + m2 + qq", equations.Total, "", feedback.EquationVariableNotInTables, []string{"zz", "qq"}},
		{"unknown abbreviation", "Hfzz + m1 = m2", equations.Total, "", feedback.EquationVariableNotInTables, []string{"Hfzz"}},
		{"temperature of a label", "m1 = m2 + Tm2", equations.Total, "", feedback.None, nil},
		{"declared temperature", "m1 = m2 + T1", equations.Total, "", feedback.None, nil},
		{"numbers are not names", "m1 = 100", equations.Total, "", feedback.None, nil},
	})
}

// TestCheckRule_Chemical covers percent usage, units and the three
// chemical classifications
func TestCheckRule_Chemical(t *testing.T) {
	runCases(t, []ruleCase{
		{"percent times label", "x1 / 100 * m1 = m22", equations.Compound, "ethanol", feedback.None, nil},
		{"percent on the right", "m22 = x1 / 100 * 80", equations.Compound, "ethanol", feedback.None, nil},
		{"percent without divisor", "x1 * m1 = m22", equations.Compound, "ethanol", feedback.IncorrectUseOfPercent, nil},
		{"percent at the end", "m22 = x1 / 100", equations.Compound, "ethanol", feedback.IncorrectUseOfPercent, nil},
		{"mixed units", "m22 + m23 = m2", equations.Total, "", feedback.InconsistantUnits, []string{"mol", "kg"}},
		{"total", "m1 = m2", equations.Total, "", feedback.None, nil},
		{"total with a component", "m1 = m2 + m11", equations.Total, "", feedback.NotOverall, nil},
		{"compound", "m11 = m21", equations.Compound, "water", feedback.None, nil},
		{"compound with overall", "m11 + m1 = m21 + m2", equations.Compound, "Water", feedback.None, nil},
		{"second compound", "m11 = m22", equations.Compound, "water", feedback.MoreThanOneCompound, []string{"water", "ethanol"}},
		{"compound not used", "m1 = m2", equations.Compound, "water", feedback.CompoundNotUsed, nil},
		{"atom", "m11 = m21 + m22", equations.Atom, "oxygen", feedback.None, nil},
		{"atom with symbol", "m22 = m3", equations.Atom, "Carbon (C)", feedback.None, nil},
		{"element missing", "m11 = m21", equations.Atom, "carbon", feedback.MoreThanOneElement, []string{"carbon", "m11"}},
	})
}

// TestCheckRule_Energy covers both heat equation forms
func TestCheckRule_Energy(t *testing.T) {
	runCases(t, []ruleCase{
		{"sum equals Q", "Hf12 + Cp12 * T1 - 25 * m3 = Q1", equations.Energy, "", feedback.None, nil},
		{"Q equals sum", "Q1 = Hf12 + Cp12 * T1 - 25 * m3 - Hfwa + Cpwa * 50 - 298 * m11", equations.Energy, "", feedback.None, nil},
		{"numeric Q", "Hfwa + Cpwa * Tm11 - 25 * m11 = 0", equations.Energy, "", feedback.None, nil},
		{"stray Q term", "Hf12 + Cp12 * T1 - 25 * m3 + Q1 * 0 = Hfwa + Cpwa * 50 - 25 * m21", equations.Energy, "", feedback.InvalidHeatEquation, nil},
		{"balanced sums", "Hf12 + Cp12 * T1 - 25 * m3 = Hfwa + Cpwa * 50 - 25 * m21", equations.Energy, "", feedback.None, nil},
		{"two equals", "Hf12 + Cp12 * T1 - 25 * m3 = Hfwa + Cpwa * 50 - 25 * m21 = Hfwa + Cpwa * 50 - 25 * m11", equations.Energy, "", feedback.InvalidHeatEquation, nil},
		{"wrong sign", "Hf12 + Cp12 * T1 + 25 * m3 = Q1", equations.Energy, "", feedback.InvalidHeatEquation, nil},
		{"wrong reference", "Hf12 + Cp12 * T1 - 20 * m3 = Q1", equations.Energy, "", feedback.InvalidHeatEquation, nil},
		{"Q not heat", "Hf12 + Cp12 * T1 - 25 * m3 = m1", equations.Energy, "", feedback.InvalidHeatEquation, nil},
		{"Cp abbreviation", "Hf12 + Cpwa * T1 - 25 * m3 = Q1", equations.Energy, "", feedback.IncorrectAbbrv, []string{"wa"}},
		{"label compound", "Hfwa + Cpwa * T1 - 25 * m3 = Q1", equations.Energy, "", feedback.IncorrectAbbrv, []string{"wa"}},
		{"unknown heat capacity", "Hfaa + Cpaa * T1 - 25 * a1 = Q1", equations.Energy, "", feedback.UnknownConstant, nil},
		{"truncated term", "Hf12 + Cp12 * T1 = Q1", equations.Energy, "", feedback.InvalidHeatEquation, nil},
	})
}

// TestCheckRule_LabelLikeConstant reports a table label spelled like a heat
// constant of an unknown compound
func TestCheckRule_LabelLikeConstant(t *testing.T) {
	d := pfd.NewDiagram()
	h := d.AddUnit("heater", "H")
	feed, err := d.AddStream(pfd.Chemical, 0, h)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetTemperature(feed, "T1", "celsius"); err != nil {
		t.Fatal(err)
	}
	for _, r := range []pfd.Row{
		{Label: "Hfzz", Compound: "water", Quantity: "?", Units: "mol"},
		{Label: "m1", Compound: "water", Quantity: "?", Units: "mol"},
	} {
		if err := d.AddRow(feed, r); err != nil {
			t.Fatal(err)
		}
	}
	heat, err := d.AddStream(pfd.Heat, 0, h)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddRow(heat, pfd.Row{Label: "Q1", Compound: "Heat", Quantity: "?", Units: "kJ"}); err != nil {
		t.Fatal(err)
	}

	lookup, _ := pfd.BuildLookup(d)
	c := NewChecker(lookup, chemistry.Default())
	eq := equations.MustParse("e", "Hfzz + Cpwa * T1 - 25 * m1 = Q1", equations.Type{Classification: equations.Energy})
	r, err := c.CheckRule(eq)
	if err != nil {
		t.Fatalf("CheckRule failed: %v", err)
	}
	if r.Key != feedback.IncorrectAbbrv || !slices.Equal(r.Args, []string{"zz"}) {
		t.Errorf("got %s %v, want Incorrect_Abbrv [zz]", r.Key, r.Args)
	}
}

// TestCheckRule_UnknownCompound is an internal error, not feedback
func TestCheckRule_UnknownCompound(t *testing.T) {
	c := mixerChecker(t)
	eq := equations.MustParse("e", "u1 = m2", equations.Type{Classification: equations.Atom, Target: "carbon"})
	if _, err := c.CheckRule(eq); !errors.Is(err, chemistry.ErrUnknownCompound) {
		t.Errorf("expected ErrUnknownCompound, got %v", err)
	}
}

// TestCheckRule_Properties checks percent usage and the reference
// temperature over generated inputs
func TestCheckRule_Properties(t *testing.T) {
	c := mixerChecker(t)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("percent needs exactly / 100 *", prop.ForAll(
		func(n int) bool {
			r := checkText(t, c, fmt.Sprintf("m22 = x1 / %d * m1", n), equations.Compound, "ethanol")
			if n == 100 {
				return r.IsEmpty()
			}
			return r.Key == feedback.IncorrectUseOfPercent
		},
		gen.IntRange(1, 400),
	))

	properties.Property("reference temperature is 25 or 298", prop.ForAll(
		func(n int) bool {
			r := checkText(t, c, fmt.Sprintf("Hf12 + Cp12 * T1 - %d * m3 = Q1", n), equations.Energy, "")
			if n == 25 || n == 298 {
				return r.IsEmpty()
			}
			return r.Key == feedback.InvalidHeatEquation
		},
		gen.IntRange(0, 400),
	))

	properties.TestingRun(t)
}
