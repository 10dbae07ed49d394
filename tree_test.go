package merkle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordStrings(n int) []interface{} {
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		out[i] = "d" + strconv.Itoa(i)
	}
	return out
}

func buildTree(t *testing.T, n int, opts ...Option) *Tree {
	t.Helper()
	all := append([]Option{WithRecords(recordStrings(n)...)}, opts...)
	tree, err := New(all...)
	require.NoError(t, err)
	return tree
}

func TestNewEmptyTree(t *testing.T) {
	tree, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Length())
	_, err = tree.RootHash()
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestUpdateGrowsLength(t *testing.T) {
	tree, err := New()
	require.NoError(t, err)
	for i := 1; i <= 7; i++ {
		require.NoError(t, tree.Update("d"+strconv.Itoa(i-1)))
		assert.Equal(t, i, tree.Length())
	}
}

func TestUpdateRejectsInvalidType(t *testing.T) {
	tree, err := New()
	require.NoError(t, err)
	err = tree.Update(42)
	assert.ErrorIs(t, err, ErrInvalidType)
}

// TestRootHashStableAcrossBuildOrder matches the teacher's own worked
// seven-leaf tree shape: a root built incrementally one leaf at a time
// must equal a root built by replaying the same records into a fresh tree.
func TestRootHashStableAcrossBuildOrder(t *testing.T) {
	incremental, err := New()
	require.NoError(t, err)
	for _, r := range recordStrings(7) {
		require.NoError(t, incremental.Update(r))
	}
	root1, err := incremental.RootHash()
	require.NoError(t, err)

	replayed, err := New(WithRecords(recordStrings(7)...))
	require.NoError(t, err)
	root2, err := replayed.RootHash()
	require.NoError(t, err)

	assert.Equal(t, root1, root2)
}

// TestRootHashSingleLeaf: a one-record tree's root is that leaf's digest,
// with no internal combination.
func TestRootHashSingleLeaf(t *testing.T) {
	tree := buildTree(t, 1)
	root, err := tree.RootHash()
	require.NoError(t, err)
	assert.Equal(t, tree.leaves[0].digest, root)
}

// TestRootHashChangesOnAppend: every append must move the root (no
// accidental memoization of a stale value).
func TestRootHashChangesOnAppend(t *testing.T) {
	tree := buildTree(t, 3)
	before, err := tree.RootHash()
	require.NoError(t, err)

	require.NoError(t, tree.Update("d3"))
	after, err := tree.RootHash()
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestDescendantOutOfRangeLeafIndex(t *testing.T) {
	tree := buildTree(t, 3)
	_, err := tree.Descendant(10, 0)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDescendantZeroIsLeafItself(t *testing.T) {
	tree := buildTree(t, 3)
	digest, err := tree.Descendant(1, 0)
	require.NoError(t, err)
	assert.Equal(t, tree.leaves[1].digest, digest)
}

func TestDescendantBeyondRootErrors(t *testing.T) {
	tree := buildTree(t, 4)
	_, err := tree.Descendant(0, 100)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestRawBytesSkipsEncoding(t *testing.T) {
	tree, err := New(WithRawBytes(true), WithEncoding(EncodingUTF16), WithRecords("d0", "d1"))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Length())
	assert.Equal(t, tree.hasher.leafDigest([]byte("d0")), tree.leaves[0].digest)
}

func TestUndecodableRecordLeavesTreeUnchanged(t *testing.T) {
	tree, err := New(WithEncoding(EncodingASCII))
	require.NoError(t, err)
	err = tree.Update("café") // outside ASCII range
	assert.ErrorIs(t, err, ErrUndecodable)
	assert.Equal(t, 0, tree.Length())
}
