package tripstats

import (
	"cmp"
	"slices"

	"bikeshare/pkg/contracts/domain"
)

// counter tallies keys while remembering them for ordered iteration
type counter[K comparable] struct {
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	c.counts[k]++
}

// sortedKeys returns the keys in ascending order of compare
func (c *counter[K]) sortedKeys(compare func(a, b K) int) []K {
	keys := make([]K, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compare)
	return keys
}

// mode returns the key with the highest count. Keys are visited in
// ascending order and the first maximum wins.
func (c *counter[K]) mode(compare func(a, b K) int) domain.Mode[K] {
	var best domain.Mode[K]
	for _, k := range c.sortedKeys(compare) {
		if n := c.counts[k]; n > best.Count {
			best = domain.Mode[K]{Value: k, Count: n}
		}
	}
	return best
}

// tally returns every key with its count in ascending key order
func tally(c *counter[string]) []domain.Count {
	keys := c.sortedKeys(cmp.Compare[string])
	out := make([]domain.Count, len(keys))
	for i, k := range keys {
		out[i] = domain.Count{Value: k, Count: c.counts[k]}
	}
	return out
}

func comparePairs(a, b domain.StationPair) int {
	return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
}
