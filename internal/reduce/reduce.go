package reduce

import (
	"binding-generator/internal/common"
	"binding-generator/internal/registry"
)

// Target selects what the registry is reduced to.
type Target struct {
	Api registry.Api
	// Version is the inclusive ceiling.
	Version float64
	Profile registry.Profile
	// Extensions are applied after the features, if supported by the target.
	Extensions []string
}

// Reduce mutates reg in place so it only holds the features, extensions,
// constants and functions required by target. An empty result is valid.
func Reduce(reg *registry.Registry, target Target) {
	constants := common.NewSet[string]()
	functions := common.NewSet[string]()

	features := reg.Features[:0]
	for _, f := range reg.Features {
		if f.Api != target.Api || f.Version > target.Version {
			continue
		}

		features = append(features, f)
		apply(constants, functions, f.Requires, f.Removes, target)
	}

	reg.Features = features

	wanted := common.NewSet(target.Extensions...)
	extensions := reg.Extensions[:0]
	for _, ext := range reg.Extensions {
		if !wanted.Has(ext.Name) || !ext.Supports(target.Api, target.Profile) {
			continue
		}

		extensions = append(extensions, ext)
		apply(constants, functions, ext.Requires, ext.Removes, target)
	}

	reg.Extensions = extensions

	// A value declared for the target api shadows the unrestricted one.
	specific := common.NewSet[string]()
	for _, c := range reg.Constants {
		if c.Api == target.Api {
			specific.AddAll(c.Name)
		}
	}

	kept := reg.Constants[:0]
	for _, c := range reg.Constants {
		if !constants.Has(c.Name) {
			continue
		}

		switch c.Api {
		case target.Api:
		case registry.ApiAny:
			if specific.Has(c.Name) {
				continue
			}
		default:
			continue
		}

		kept = append(kept, c)
	}

	reg.Constants = kept

	fns := reg.Functions[:0]
	for _, fn := range reg.Functions {
		if functions.Has(fn.Name) {
			fns = append(fns, fn)
		}
	}

	reg.Functions = fns
}

// apply adds every matching require delta, then drops every matching remove
// delta.
func apply(constants, functions common.Set[string], requires, removes []registry.Delta, target Target) {
	for _, d := range requires {
		if d.Matches(target.Api, target.Profile) {
			constants.AddAll(d.Constants...)
			functions.AddAll(d.Functions...)
		}
	}

	for _, d := range removes {
		if d.Matches(target.Api, target.Profile) {
			constants.RemoveAll(d.Constants...)
			functions.RemoveAll(d.Functions...)
		}
	}
}
