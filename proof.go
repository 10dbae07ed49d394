package merkle

import (
	"bytes"
	"fmt"
)

// AuditProof computes an audit proof for a record's inclusion. arg is
// either an int leaf index, or a string/[]byte record resolved to the
// leftmost leaf whose digest matches it; any other type returns
// ErrInvalidType.
//
// A negative or out-of-range index, or a record that was never appended,
// yields a sentinel proof guaranteed to fail ValidateProof, rather than an
// error, so a caller can't distinguish "not found" from "found but
// tampered" through the error channel.
func (t *Tree) AuditProof(arg interface{}) (*Proof, error) {
	switch arg.(type) {
	case int, string, []byte:
	default:
		return nil, fmt.Errorf("%w: audit proof target must be int, string or []byte, got %T", ErrInvalidType, arg)
	}
	index, ok := t.resolveAuditIndex(arg)
	if !ok {
		return newSentinelProof(t), nil
	}
	return t.auditProofAt(index), nil
}

func (t *Tree) resolveAuditIndex(arg interface{}) (int, bool) {
	switch v := arg.(type) {
	case int:
		if v < 0 || v >= len(t.leaves) {
			return 0, false
		}
		return v, true
	case string, []byte:
		raw, err := t.recordBytes(v)
		if err != nil {
			return 0, false
		}
		digest := t.hasher.leafDigest(raw)
		return t.leftmostLeafIndex(digest)
	default:
		return 0, false
	}
}

// leftmostLeafIndex finds the first leaf with the given digest. When
// duplicate records exist, only the leftmost is provable this way.
func (t *Tree) leftmostLeafIndex(digest []byte) (int, bool) {
	for i, l := range t.leaves {
		if bytes.Equal(l.digest, digest) {
			return i, true
		}
	}
	return 0, false
}

// auditProofAt walks from leaf i up to its principal sub-root, collecting
// one sibling per step, then folds in the remaining principal sub-roots to
// the right (once, combined) and to the left (one at a time), matching the
// tree's right-fold root construction.
func (t *Tree) auditProofAt(i int) *Proof {
	leaf := t.leaves[i]
	path := []PathElement{{Sign: SignStart, Digest: leaf.digest}}

	cur := leaf
	for cur.child != nil {
		parent := cur.child
		if cur.isLeftParent() {
			path = append(path, PathElement{Sign: SignRight, Digest: parent.right.digest})
		} else {
			path = append(path, PathElement{Sign: SignLeft, Digest: parent.left.digest})
		}
		cur = parent
	}

	pos := subRootPosition(t.subRoots, cur)
	n := len(t.subRoots)
	if pos < n-1 {
		rightDigest := t.hasher.rightFold(subRootDigests(t.subRoots[pos+1:]))
		path = append(path, PathElement{Sign: SignRight, Digest: rightDigest})
	}
	for k := pos - 1; k >= 0; k-- {
		path = append(path, PathElement{Sign: SignLeft, Digest: t.subRoots[k].digest})
	}

	return newProof(t, path, 0)
}

func subRootPosition(subRoots []*node, target *node) int {
	for i, n := range subRoots {
		if n == target {
			return i
		}
	}
	// Unreachable: cur is always a principal sub-root once its child chain
	// is exhausted.
	return len(subRoots) - 1
}

// ConsistencyProof computes a consistency proof that the tree with the
// claimed root subhash and length sublen is a prefix this tree extends. A
// mismatched subhash, or a sublen outside (0, Length()], yields a sentinel
// proof for the same reason AuditProof does for absent records.
//
// The path is built from the principal sub-roots of the sublen-length
// prefix and of the current tree, over the same leaf-digest sequence: the
// prefix's rightmost principal sub-root either already coincides with one
// of the current tree's principal sub-roots, or is nested somewhere inside
// one, reachable by a bridging path of sibling digests within that larger
// sub-root's own dyadic structure (rangeAuditPath). From there the proof
// extends exactly like an audit proof's subroot-to-root folding: the
// remaining sub-roots to the right combined once, then the ones to the
// left one at a time.
func (t *Tree) ConsistencyProof(subhash []byte, sublen int) (*Proof, error) {
	length := len(t.leaves)
	if sublen <= 0 || sublen > length {
		return newSentinelProof(t), nil
	}

	digests := t.leafDigests()
	mSizes := principalSubRootSizes(sublen)
	mOffsets := principalSubRootOffsets(mSizes)
	prefixDigests := make([][]byte, len(mSizes))
	for i := range mSizes {
		prefixDigests[i] = t.mth(digests[mOffsets[i] : mOffsets[i]+mSizes[i]])
	}
	if !bytes.Equal(t.hasher.rightFold(prefixDigests), subhash) {
		return newSentinelProof(t), nil
	}

	if sublen == length {
		return newProof(t, []PathElement{{Sign: SignStart, Digest: subhash}}, 0), nil
	}

	lastIdx := len(mSizes) - 1
	offLast, sizeLast := mOffsets[lastIdx], mSizes[lastIdx]

	nSizes := principalSubRootSizes(length)
	nOffsets := principalSubRootOffsets(nSizes)
	fullDigests := make([][]byte, len(nSizes))
	for i := range nSizes {
		fullDigests[i] = t.mth(digests[nOffsets[i] : nOffsets[i]+nSizes[i]])
	}

	posC := 0
	for i := range nSizes {
		if nOffsets[i] <= offLast && offLast < nOffsets[i]+nSizes[i] {
			posC = i
			break
		}
	}

	path := []PathElement{{Sign: SignStart, Digest: prefixDigests[lastIdx]}}

	if nSizes[posC] > sizeLast {
		block := digests[nOffsets[posC] : nOffsets[posC]+nSizes[posC]]
		path = append(path, t.rangeAuditPath(block, offLast-nOffsets[posC], sizeLast)...)
	}

	if posC < len(nSizes)-1 {
		right := t.hasher.rightFold(fullDigests[posC+1:])
		path = append(path, PathElement{Sign: SignRight, Digest: right})
	}
	for k := posC - 1; k >= 0; k-- {
		path = append(path, PathElement{Sign: SignLeft, Digest: fullDigests[k]})
	}

	return newProof(t, path, 0), nil
}

// rangeAuditPath finds the digest path from a canonical dyadic node at
// (relOffset, relSize) within d (d's length is a power of two, the same
// split mth uses) up to the root of d, in the same right/left sign
// convention as auditProofAt's walk. relOffset must be a multiple of
// relSize: this holds for any sub-root of a sublen-prefix nested inside a
// larger principal sub-root of the full tree, since dyadic blocks at any
// depth are always either disjoint or one contains the other with an
// offset that is a multiple of the contained block's size.
func (t *Tree) rangeAuditPath(d [][]byte, relOffset, relSize int) []PathElement {
	n := len(d)
	if relSize == n {
		return nil
	}
	k := lpow2LessThan(n)
	if relOffset < k {
		path := t.rangeAuditPath(d[:k], relOffset, relSize)
		return append(path, PathElement{Sign: SignRight, Digest: t.mth(d[k:])})
	}
	path := t.rangeAuditPath(d[k:], relOffset-k, relSize)
	return append(path, PathElement{Sign: SignLeft, Digest: t.mth(d[:k])})
}

// principalSubRootSizes returns the sizes (descending powers of two) of the
// principal sub-roots of a length-n tree, per its binary-counter
// decomposition: one entry per set bit of n, most-significant first.
func principalSubRootSizes(n int) []int {
	var sizes []int
	for bit := 63; bit >= 0; bit-- {
		if n&(1<<uint(bit)) != 0 {
			sizes = append(sizes, 1<<uint(bit))
		}
	}
	return sizes
}

// principalSubRootOffsets returns the leaf-index offset of each size in
// sizes, assuming they partition a leaf-digest sequence left to right in
// order.
func principalSubRootOffsets(sizes []int) []int {
	offsets := make([]int, len(sizes))
	off := 0
	for i, s := range sizes {
		offsets[i] = off
		off += s
	}
	return offsets
}
