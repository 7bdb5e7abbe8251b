// Package document reads problem files: a diagram plus the equations a
// student wrote for it, in YAML.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/validation"
)

var (
	ErrDuplicateUnit = errors.New("document: duplicate unit label")
	ErrUnknownUnit   = errors.New("document: unknown unit label")
)

// Document is the on-disk layout of a problem
type Document struct {
	Title     string     `yaml:"title,omitempty"`
	Units     []Unit     `yaml:"units" validate:"dive"`
	Streams   []Stream   `yaml:"streams" validate:"dive"`
	Equations []Equation `yaml:"equations" validate:"dive"`
}

type Unit struct {
	Label string `yaml:"label" validate:"required,max=32"`
	Type  string `yaml:"type" validate:"required"`
}

// Stream connects two units by label. An empty end is an open stream.
type Stream struct {
	From             string `yaml:"from,omitempty"`
	To               string `yaml:"to,omitempty"`
	Kind             string `yaml:"kind,omitempty" validate:"omitempty,oneof=chemical heat"`
	Temperature      string `yaml:"temperature,omitempty"`
	TemperatureUnits string `yaml:"temperature_units,omitempty"`
	Rows             []Row  `yaml:"rows" validate:"required,min=1,dive"`
}

type Row struct {
	Label    string `yaml:"label" validate:"required,pfdlabel"`
	Compound string `yaml:"compound" validate:"required"`
	Quantity string `yaml:"quantity,omitempty"`
	Units    string `yaml:"units,omitempty"`
}

// Equation is one line of the equation editor. Ref defaults to e1, e2, ...
type Equation struct {
	Ref    string `yaml:"ref,omitempty"`
	Text   string `yaml:"text" validate:"required"`
	Type   string `yaml:"type" validate:"required"`
	Target string `yaml:"target,omitempty"`
}

// Problem is a document turned into core types
type Problem struct {
	Title     string
	Diagram   *pfd.Diagram
	Equations []*equations.Equation
}

// Load decodes and validates a document. Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document: empty input")
		}
		return nil, fmt.Errorf("document: decode: %w", err)
	}
	if err := validation.Struct(&doc); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads the document at path
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Build creates the diagram and parses every equation
func (doc *Document) Build() (*Problem, error) {
	d := pfd.NewDiagram()
	units := make(map[string]pfd.UnitID, len(doc.Units))
	for _, u := range doc.Units {
		if _, dup := units[u.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, u.Label)
		}
		units[u.Label] = d.AddUnit(u.Type, u.Label)
	}

	end := func(label string) (pfd.UnitID, error) {
		if label == "" {
			return 0, nil
		}
		id, ok := units[label]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, label)
		}
		return id, nil
	}

	for i, s := range doc.Streams {
		if err := addStream(d, s, end); err != nil {
			return nil, fmt.Errorf("document: stream %d: %w", i+1, err)
		}
	}

	eqs := make([]*equations.Equation, 0, len(doc.Equations))
	for i, e := range doc.Equations {
		ref := e.Ref
		if ref == "" {
			ref = "e" + strconv.Itoa(i+1)
		}
		cls, err := equations.ParseClassification(e.Type)
		if err != nil {
			return nil, fmt.Errorf("document: equation %s: %w", ref, err)
		}
		eq, err := equations.Parse(ref, e.Text, equations.Type{Classification: cls, Target: e.Target})
		if err != nil {
			return nil, fmt.Errorf("document: %w", err)
		}
		eqs = append(eqs, eq)
	}

	return &Problem{Title: doc.Title, Diagram: d, Equations: eqs}, nil
}

func addStream(d *pfd.Diagram, s Stream, end func(string) (pfd.UnitID, error)) error {
	from, err := end(s.From)
	if err != nil {
		return err
	}
	to, err := end(s.To)
	if err != nil {
		return err
	}
	kind, err := pfd.ParseStreamKind(s.Kind)
	if err != nil {
		return err
	}

	id, err := d.AddStream(kind, from, to)
	if err != nil {
		return err
	}
	if s.Temperature != "" {
		if err := d.SetTemperature(id, s.Temperature, s.TemperatureUnits); err != nil {
			return err
		}
	}
	for _, r := range s.Rows {
		row := pfd.Row{
			Label:    r.Label,
			Compound: r.Compound,
			Quantity: validation.DefaultOr(r.Quantity, pfd.UnsetUnits),
			Units:    validation.DefaultOr(r.Units, pfd.UnsetUnits),
		}
		if err := d.AddRow(id, row); err != nil {
			return err
		}
	}
	return nil
}

// LoadProblem reads and builds the document at path
func LoadProblem(path string) (*Problem, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}
