package algorithms

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConnectivityProperties checks chains are connected and that cutting
// any link disconnects them
func TestConnectivityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("a chain of units is connected", prop.ForAll(
		func(n int) bool {
			d, _, _ := chainDiagram(t, n)
			return IsConnected(d.Graph())
		},
		gen.IntRange(1, 12),
	))

	properties.Property("removing a link splits the chain", prop.ForAll(
		func(n, cut int) bool {
			d, _, links := chainDiagram(t, n)
			if err := d.RemoveStream(links[cut%len(links)]); err != nil {
				return false
			}
			return !IsConnected(d.Graph())
		},
		gen.IntRange(2, 12),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestAbstractionIsPure re-runs the engine and compares lattice signatures
func TestAbstractionIsPure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("same input gives the same lattice", prop.ForAll(
		func(n int, downstreamOnly bool) bool {
			d, _, _ := chainDiagram(t, n)
			g := d.Graph()
			first, err := CreateAbstractedPFD(g, d.Allocator(), Options{DownstreamOnly: downstreamOnly})
			if err != nil {
				return false
			}
			second, err := CreateAbstractedPFD(g, d.Allocator(), Options{DownstreamOnly: downstreamOnly})
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first.Signature(), second.Signature())
		},
		gen.IntRange(1, 7),
		gen.Bool(),
	))

	properties.Property("a chain of n units tops out at level n with one graph", prop.ForAll(
		func(n int) bool {
			d, _, _ := chainDiagram(t, n)
			l, err := CreateAbstractedPFD(d.Graph(), d.Allocator(), Options{})
			if err != nil {
				return false
			}
			levels := l.Levels()
			return levels[len(levels)-1] == n && len(l.Graphs(n)) == 1
		},
		gen.IntRange(1, 7),
	))

	properties.TestingRun(t)
}
