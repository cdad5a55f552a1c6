package sync

import (
	"sort"
)

// ExclusionSet is the set of basenames that are skipped during traversal.
// Matching is by exact name, not by path: an excluded name is skipped at
// every depth it occurs.
type ExclusionSet struct {
	names []string
}

// NewExclusionSet builds an ExclusionSet from the given names. The input
// doesn't need to be sorted or free of duplicates.
func NewExclusionSet(names []string) ExclusionSet {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return ExclusionSet{names: sorted}
}

// Contains reports whether name is excluded.
func (set ExclusionSet) Contains(name string) bool {
	i := sort.SearchStrings(set.names, name)
	return i < len(set.names) && set.names[i] == name
}

// Len returns the number of names in the set, counting duplicates.
func (set ExclusionSet) Len() int {
	return len(set.names)
}
