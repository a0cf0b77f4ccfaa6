package core

import "github.com/lgbp/lgbp/tensor"

// EdgeIndex is the bipartite edge table between two MessageChunks that
// back the two ends of the same physical wiring (e.g. "incoming to
// variable i from its neighboring factor" paired with "incoming to
// factor j from its neighboring variable", spec.md §4.2). AddEdge
// allocates one slot on each side as edges are declared; Finalize, run
// after both chunks have finalized (so each chunk's final degree and
// node count are fixed), compacts every edge down to a pair of flat
// row offsets into the chunks' distribute-layout tensors. Nothing here
// tracks an explicit edge id: a *MessageChunk's own pointer identity is
// stable and comparable, so the two chunks it pairs are kept by
// reference rather than through a separate id table (spec.md §9).
type EdgeIndex struct {
	a, b *MessageChunk

	idA, slotA []int
	idB, slotB []int

	finalized  bool
	rowA, rowB []int
}

// NewEdgeIndex creates an EdgeIndex pairing chunk a's and chunk b's
// incoming-message slots, one pair per physical edge.
func NewEdgeIndex(a, b *MessageChunk) *EdgeIndex {
	return &EdgeIndex{a: a, b: b}
}

// A returns the chunk on the "A" side of this pairing.
func (e *EdgeIndex) A() *MessageChunk { return e.a }

// B returns the chunk on the "B" side of this pairing.
func (e *EdgeIndex) B() *MessageChunk { return e.b }

// NumEdges returns the number of edges declared so far.
func (e *EdgeIndex) NumEdges() int { return len(e.idA) }

// AddEdge declares one physical edge between node idA of chunk A and
// node idB of chunk B, allocating the next free slot on each side.
// Must run before either chunk is finalized.
func (e *EdgeIndex) AddEdge(idA, idB int) error {
	if e.finalized {
		return ErrAlreadyFinalized
	}
	slotA, err := e.a.NextSlot(idA)
	if err != nil {
		return err
	}
	slotB, err := e.b.NextSlot(idB)
	if err != nil {
		return err
	}
	e.idA = append(e.idA, idA)
	e.slotA = append(e.slotA, slotA)
	e.idB = append(e.idB, idB)
	e.slotB = append(e.slotB, slotB)
	return nil
}

// Finalize computes, for every declared edge, the flat distribute-layout
// row offset (d*N + n) into each side's own MessageChunk. Both chunks
// must already be finalized: their final MaxDegree and NumNodes fix the
// row arithmetic. Idempotent calls after the first return ErrAlreadyFinalized.
func (e *EdgeIndex) Finalize() error {
	if e.finalized {
		return ErrAlreadyFinalized
	}
	if !e.a.Finalized() || !e.b.Finalized() {
		return ErrNotFinalized
	}

	n := len(e.idA)
	e.rowA = make([]int, n)
	e.rowB = make([]int, n)

	nA := e.a.NumNodes()
	nB := e.b.NumNodes()
	for i := 0; i < n; i++ {
		e.rowA[i] = e.slotA[i]*nA + e.idA[i]
		e.rowB[i] = e.slotB[i]*nB + e.idB[i]
	}

	e.finalized = true
	return nil
}

// EdgeRows returns the precomputed (rowA, rowB) flat distribute-layout
// offsets for edge i. Valid only after Finalize.
func (e *EdgeIndex) EdgeRows(i int) (rowA, rowB int, err error) {
	if !e.finalized {
		return 0, 0, ErrNotFinalized
	}
	if i < 0 || i >= len(e.rowA) {
		return 0, 0, ErrBadNodeID
	}
	return e.rowA[i], e.rowB[i], nil
}

// DeliverDamped writes, for every edge, src's row into dst's row,
// damping against dst's existing contents: dst <- damp*dst +
// (1-damp)*src. srcIsA selects which side of this pairing src's chunk
// occupies; dst is always the opposite side. src and dst must already be
// in Distribute layout. This is the engine's sole delivery path (spec.md
// §4.5, §9 "Damping placement"): the one row-walk over declared edges,
// shared by both delivery directions rather than duplicated per caller.
func (e *EdgeIndex) DeliverDamped(src, dst *tensor.Dense3, srcIsA bool, damp float64) error {
	if !e.finalized {
		return ErrNotFinalized
	}
	for i := range e.rowA {
		srcRow, dstRow := e.rowB[i], e.rowA[i]
		if srcIsA {
			srcRow, dstRow = e.rowA[i], e.rowB[i]
		}
		sRow, err := src.RowDist(srcRow)
		if err != nil {
			return err
		}
		dRow, err := dst.RowDist(dstRow)
		if err != nil {
			return err
		}
		for s := range dRow {
			dRow[s] = damp*dRow[s] + (1-damp)*sRow[s]
		}
	}
	return nil
}
