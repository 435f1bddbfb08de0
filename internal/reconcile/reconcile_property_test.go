//go:build property
// +build property

package reconcile

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/scan-io-git/propusage/internal/properties"
	"github.com/scan-io-git/propusage/internal/usage"
)

// buildIndex defines key "k<i>" counts[i] times, spread over two files.
func buildIndex(counts []int) *properties.Index {
	idx := properties.NewIndex()
	for i, n := range counts {
		for j := 0; j < n; j++ {
			idx.Add(properties.Definition{
				Key:  fmt.Sprintf("k%d", i),
				File: fmt.Sprintf("f%d.properties", j%2),
				Line: j + 1,
			})
		}
	}
	return idx
}

func TestReconcileProperties(t *testing.T) {
	props := gopter.NewProperties(nil)

	props.Property("duplicate count equals number of definitions", prop.ForAll(
		func(counts []int, enabled bool) bool {
			f := Reconcile(buildIndex(counts), nil, nil, Checks{Duplicates: enabled})
			for i, n := range counts {
				got, ok := f.DefinedMoreThanOnce[fmt.Sprintf("k%d", i)]
				want := enabled && n > 1
				if ok != want || (ok && got != n) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.IntRange(0, 4)),
		gen.Bool(),
	))

	props.Property("used keys are never reported unused", prop.ForAll(
		func(counts []int, usedMask []bool) bool {
			used := usage.NameSet{}
			for i, u := range usedMask {
				if u {
					used[fmt.Sprintf("k%d", i)] = struct{}{}
				}
			}
			f := Reconcile(buildIndex(counts), used, nil, Checks{Unused: true})
			for _, key := range f.NotUsed {
				if used.Has(key) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.IntRange(1, 3)),
		gen.SliceOfN(8, gen.Bool()),
	))

	props.Property("reconciliation is idempotent", prop.ForAll(
		func(counts []int, rows []int) bool {
			idx := buildIndex(counts)
			locations := usage.LocationSet{}
			for i, row := range rows {
				locations.Add(usage.Location{Property: fmt.Sprintf("k%d", i), Row: row, File: "App.java"})
			}
			first := Reconcile(idx, usage.NameSet{}, locations, AllChecks())
			second := Reconcile(idx, usage.NameSet{}, locations, AllChecks())
			return reflect.DeepEqual(first, second)
		},
		gen.SliceOfN(6, gen.IntRange(0, 3)),
		gen.SliceOfN(10, gen.IntRange(1, 100)),
	))

	props.TestingRun(t)
}
