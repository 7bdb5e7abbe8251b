package chemistry

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/validation"
)

//go:embed compounds.yaml
var builtinCatalog []byte

// catalogFile is the on-disk layout of a catalog. When Elements is set every
// compound may only use the elements it lists.
type catalogFile struct {
	Elements  []string   `yaml:"elements"`
	Compounds []Compound `yaml:"compounds" validate:"required,min=1,dive"`
}

// Catalog is an immutable set of compounds indexed by name and abbreviation.
// It is safe for concurrent use.
type Catalog struct {
	compounds []Compound
	byName    map[string]int
	byAbbr    map[string]int
	elements  []string
}

// NewCatalog validates compounds and indexes them. Names and abbreviations
// must be unique; element names are lower-cased.
func NewCatalog(compounds []Compound) (*Catalog, error) {
	c := &Catalog{
		compounds: make([]Compound, 0, len(compounds)),
		byName:    make(map[string]int, len(compounds)),
		byAbbr:    make(map[string]int, len(compounds)),
	}
	seen := make(map[string]bool)

	for i := range compounds {
		comp := compounds[i]
		if err := validation.Struct(&comp); err != nil {
			return nil, fmt.Errorf("compound %d: %w", i, err)
		}
		comp.Name = normalize(comp.Name)
		elems := make(map[string]int, len(comp.Elements))
		for e, n := range comp.Elements {
			e = normalize(e)
			elems[e] += n
			if !seen[e] {
				seen[e] = true
				c.elements = append(c.elements, e)
			}
		}
		comp.Elements = elems

		if comp.Name == OverallName {
			return nil, fmt.Errorf("compound %d: %q is reserved", i, comp.Name)
		}
		if _, dup := c.byName[comp.Name]; dup {
			return nil, fmt.Errorf("compound %d: duplicate name %q", i, comp.Name)
		}
		if _, dup := c.byAbbr[comp.Abbr]; dup {
			return nil, fmt.Errorf("compound %d: duplicate abbreviation %q", i, comp.Abbr)
		}
		c.byName[comp.Name] = len(c.compounds)
		c.byAbbr[comp.Abbr] = len(c.compounds)
		c.compounds = append(c.compounds, comp)
	}
	sort.Strings(c.elements)
	return c, nil
}

// Load reads a YAML catalog from r
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validation.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return file.build()
}

func (f *catalogFile) build() (*Catalog, error) {
	c, err := NewCatalog(f.Compounds)
	if err != nil || len(f.Elements) == 0 {
		return c, err
	}
	declared := make(map[string]bool, len(f.Elements))
	for _, e := range f.Elements {
		declared[normalize(e)] = true
	}
	for _, comp := range c.compounds {
		for _, e := range sortedKeys(comp.Elements) {
			if !declared[e] {
				return nil, fmt.Errorf("compound %s: undeclared element %s", comp.Name, e)
			}
		}
	}
	return c, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadFile reads a YAML catalog from path
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the built-in catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		var file catalogFile
		if err := yaml.Unmarshal(builtinCatalog, &file); err != nil {
			panic(fmt.Sprintf("chemistry: built-in catalog: %v", err))
		}
		c, err := file.build()
		if err != nil {
			panic(fmt.Sprintf("chemistry: built-in catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ByName looks a compound up by its full name, case-insensitively
func (c *Catalog) ByName(name string) (*Compound, bool) {
	i, ok := c.byName[normalize(name)]
	if !ok {
		return nil, false
	}
	return &c.compounds[i], true
}

// ByAbbr looks a compound up by its two character abbreviation
func (c *Catalog) ByAbbr(abbr string) (*Compound, bool) {
	i, ok := c.byAbbr[abbr]
	if !ok {
		return nil, false
	}
	return &c.compounds[i], true
}

// Lookup is ByName returning ErrUnknownCompound on a miss
func (c *Catalog) Lookup(name string) (*Compound, error) {
	comp, ok := c.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompound, name)
	}
	return comp, nil
}

// Compounds returns the catalog in declaration order
func (c *Catalog) Compounds() []Compound {
	out := make([]Compound, len(c.compounds))
	copy(out, c.compounds)
	return out
}

// Elements returns every element used by the catalog, sorted
func (c *Catalog) Elements() []string {
	return append([]string(nil), c.elements...)
}

func (c *Catalog) Len() int { return len(c.compounds) }
