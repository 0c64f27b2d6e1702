package pipelining

import mapset "github.com/deckarep/golang-set/v2"

// blockerSet is a monotonic, insert-only set of identifiers blocked for the
// lifetime of a single pipeline. A chunk is processed by exactly one
// pipeline, so nothing is ever removed: once an account or global contract
// identifier is blocked (because a deployment touched it), it stays blocked
// until the pipeline is discarded at the end of the chunk.
type blockerSet[T comparable] struct {
	set mapset.Set[T]
}

func newBlockerSet[T comparable]() *blockerSet[T] {
	return &blockerSet[T]{set: mapset.NewSet[T]()}
}

// block adds item to the set, reporting whether it was newly added (as
// opposed to already being blocked).
func (b *blockerSet[T]) block(item T) bool {
	return b.set.Add(item)
}

// blocked reports whether item has previously been blocked.
func (b *blockerSet[T]) blocked(item T) bool {
	return b.set.Contains(item)
}
