package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// TestLoadProblem_Separator builds the sample separator problem
func TestLoadProblem_Separator(t *testing.T) {
	p, err := LoadProblem("../../examples/problems/separator.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Water/ethanol separator", p.Title)
	g := p.Diagram.Graph()
	assert.Equal(t, 1, g.ConcreteUnits())
	assert.Len(t, g.Streams, 3)
	assert.Len(t, p.Diagram.Tables(), 3)

	require.Len(t, p.Equations, 2)
	assert.Equal(t, "e1", p.Equations[0].Ref)
	assert.Equal(t, equations.Compound, p.Equations[1].Type.Classification)
	assert.Equal(t, "water", p.Equations[1].Type.Target)

	lookup, dups := pfd.BuildLookup(p.Diagram)
	assert.Empty(t, dups)
	td, ok := lookup.Get("m21")
	require.True(t, ok)
	assert.Equal(t, pfd.UnsetUnits, td.Quantity, "quantity defaults to ?")
	assert.Equal(t, "mol", td.Units)
}

// TestLoadProblem_Heater keeps temperatures and heat streams
func TestLoadProblem_Heater(t *testing.T) {
	p, err := LoadProblem("../../examples/problems/heater.yaml")
	require.NoError(t, err)

	lookup, _ := pfd.BuildLookup(p.Diagram)
	assert.True(t, lookup.IsTemperature("T1"))
	q, ok := lookup.Get("Q1")
	require.True(t, ok)
	assert.Equal(t, pfd.Heat, q.Kind)
	assert.Equal(t, "energy", p.Equations[1].Ref)
}

// TestLoad_Errors rejects malformed documents with a field-qualified message
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty input"},
		{"unknown field", "units: []\ncolour: red\n", "colour"},
		{"bad kind", "streams:\n  - kind: steam\n    rows: [{label: m1, compound: water}]\n", "Kind"},
		{"bad label", "streams:\n  - rows: [{label: 1m, compound: water}]\n", "Label"},
		{"no rows", "streams:\n  - to: S\n", "Rows"},
		{"equation text", "equations:\n  - {type: total}\n", "Text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestBuild_Errors covers references that only fail when building
func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
		msg  string
	}{
		{
			name: "unknown unit",
			doc:  "units: [{label: S, type: mixer}]\nstreams:\n  - {to: X, rows: [{label: m1, compound: water}]}\n",
			want: ErrUnknownUnit,
		},
		{
			name: "duplicate unit",
			doc:  "units: [{label: S, type: mixer}, {label: S, type: splitter}]\n",
			want: ErrDuplicateUnit,
		},
		{
			name: "classification",
			doc:  "equations: [{text: m1 = m2, type: momentum}]\n",
			msg:  "unknown classification",
		},
		{
			name: "syntax",
			doc:  "equations: [{ref: bad, text: m1 = $, type: total}]\n",
			want: equations.ErrSyntax,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(strings.NewReader(tt.doc))
			require.NoError(t, err)
			_, err = doc.Build()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}
