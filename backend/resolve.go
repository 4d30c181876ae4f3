package backend

import (
	"cmp"
	"slices"
)

// byPriority returns a copy of set ordered by priority, keeping declaration
// order for equal ranks.
func byPriority(set []Descriptor) []Descriptor {
	sorted := slices.Clone(set)
	slices.SortStableFunc(sorted, func(a, b Descriptor) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return sorted
}

// Cases returns the enabled entries of set in priority order. These are the
// wrapper cases a build over set contains. The result is empty when nothing
// is enabled.
func Cases(set []Descriptor) []Descriptor {
	var out []Descriptor
	for _, d := range byPriority(set) {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks that set enables at least one backend.
func Validate(set []Descriptor) error {
	for _, d := range set {
		if d.Enabled {
			return nil
		}
	}
	return configError(set)
}

// ResolveDefault picks the default backend from set: the highest-priority
// entry that is enabled. Candidates are walked from highest to lowest
// priority and the first enabled one wins, so exactly one backend is
// returned whenever Validate succeeds.
func ResolveDefault(set []Descriptor) (Descriptor, error) {
	if err := Validate(set); err != nil {
		return Descriptor{}, err
	}
	for _, d := range byPriority(set) {
		if d.Enabled {
			return d, nil
		}
	}
	// Unreachable after Validate.
	return Descriptor{}, configError(set)
}
