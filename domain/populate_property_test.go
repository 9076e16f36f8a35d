package domain

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizePopulateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalizing twice equals normalizing once", prop.ForAll(
		func(paths []string) bool {
			once := NormalizePopulate(paths)
			twice := NormalizePopulate(once)
			return reflect.DeepEqual(once, twice)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("one option per input path, in order", prop.ForAll(
		func(paths []string) bool {
			got := NormalizePopulate(paths)
			if len(got) != len(paths) {
				return false
			}
			for i, opt := range got {
				if opt.Path != paths[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("a single path string normalizes like a one-element slice", prop.ForAll(
		func(path string) bool {
			return reflect.DeepEqual(NormalizePopulate(path), NormalizePopulate([]string{path}))
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
