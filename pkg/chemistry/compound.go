// Package chemistry holds the compound catalog used to check heat constants,
// abbreviations and element composition.
package chemistry

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownCompound is returned when a compound name is not in the catalog
var ErrUnknownCompound = errors.New("chemistry: unknown compound")

// OverallName is the pseudo-compound of a table's total-flow row
const OverallName = "overall"

// IsOverall reports whether name is the total-flow pseudo-compound
func IsOverall(name string) bool {
	return normalize(name) == OverallName
}

// Compound is one catalog entry. Nil heat constants are unknown.
type Compound struct {
	Name             string         `yaml:"name" json:"name" validate:"required"`
	Abbr             string         `yaml:"abbr" json:"abbr" validate:"required,abbr"`
	Elements         map[string]int `yaml:"elements" json:"elements" validate:"required,min=1,dive,gt=0"`
	HeatCapacity     *float64       `yaml:"heat_capacity,omitempty" json:"heat_capacity,omitempty"`
	HeatFormation    *float64       `yaml:"heat_formation,omitempty" json:"heat_formation,omitempty"`
	HeatVaporization *float64       `yaml:"heat_vaporization,omitempty" json:"heat_vaporization,omitempty"`
	BoilingPoint     *float64       `yaml:"boiling_point,omitempty" json:"boiling_point,omitempty"`
	MeltingPoint     *float64       `yaml:"melting_point,omitempty" json:"melting_point,omitempty"`
}

func (c *Compound) HasHeatCapacity() bool  { return c.HeatCapacity != nil }
func (c *Compound) HasHeatFormation() bool { return c.HeatFormation != nil }

// Contains reports whether the compound has at least one atom of element
func (c *Compound) Contains(element string) bool {
	return c.Elements[normalize(element)] > 0
}

// ElementNames returns the compound's elements in sorted order
func (c *Compound) ElementNames() []string {
	names := make([]string, 0, len(c.Elements))
	for e := range c.Elements {
		names = append(names, e)
	}
	sort.Strings(names)
	return names
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
