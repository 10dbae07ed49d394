package merkle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuditProofEveryLeaf is property P2: every index in a tree of several
// sizes produces a proof that validates against the tree's own root.
func TestAuditProofEveryLeaf(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 13} {
		n := n
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			tree := buildTree(t, n)
			root, err := tree.RootHash()
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				proof, err := tree.AuditProof(i)
				require.NoError(t, err)
				assert.True(t, ValidateProof(root, proof), "leaf %d should validate", i)
			}
		})
	}
}

// TestAuditProofByRecord is property P3.
func TestAuditProofByRecord(t *testing.T) {
	tree := buildTree(t, 5)
	root, err := tree.RootHash()
	require.NoError(t, err)

	proof, err := tree.AuditProof("d2")
	require.NoError(t, err)
	assert.True(t, ValidateProof(root, proof))

	proof, err = tree.AuditProof([]byte("d2"))
	require.NoError(t, err)
	assert.True(t, ValidateProof(root, proof))
}

// TestAuditProofRejectsAbsentRecords is property P4.
func TestAuditProofRejectsAbsentRecords(t *testing.T) {
	tree := buildTree(t, 4)
	root, err := tree.RootHash()
	require.NoError(t, err)

	negative, err := tree.AuditProof(-1)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, negative))

	tooFar, err := tree.AuditProof(100)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, tooFar))

	neverAppended, err := tree.AuditProof("nope")
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, neverAppended))
}

func TestAuditProofLeftmostOnDuplicates(t *testing.T) {
	tree, err := New(WithRecords("x", "y", "x"))
	require.NoError(t, err)
	root, err := tree.RootHash()
	require.NoError(t, err)

	proof, err := tree.AuditProof("x")
	require.NoError(t, err)
	assert.True(t, ValidateProof(root, proof))
	assert.Equal(t, tree.leaves[0].digest, proof.ProofPath()[proof.ProofIndex()].Digest)
}

// TestConsistencyProofEverySublen is property P5, over every possible
// prefix length of several tree sizes, including ones that are and are not
// themselves powers of two.
func TestConsistencyProofEverySublen(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 13, 21} {
		n := n
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			tree := buildTree(t, n)
			root, err := tree.RootHash()
			require.NoError(t, err)

			for sublen := 1; sublen <= n; sublen++ {
				prefix := buildTree(t, sublen)
				subRoot, err := prefix.RootHash()
				require.NoError(t, err)

				proof, err := tree.ConsistencyProof(subRoot, sublen)
				require.NoError(t, err)
				assert.True(t, ValidateProof(root, proof), "sublen %d should validate", sublen)
			}
		})
	}
}

// TestConsistencyProofRejectsWrongSubhash is property P6.
func TestConsistencyProofRejectsWrongSubhash(t *testing.T) {
	tree := buildTree(t, 7)
	root, err := tree.RootHash()
	require.NoError(t, err)

	proof, err := tree.ConsistencyProof([]byte("not-a-real-root"), 3)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, proof))
}

// TestConsistencyProofRejectsWrongSublen is property P7.
func TestConsistencyProofRejectsWrongSublen(t *testing.T) {
	tree := buildTree(t, 7)
	root, err := tree.RootHash()
	require.NoError(t, err)

	prefix := buildTree(t, 3)
	subRoot, err := prefix.RootHash()
	require.NoError(t, err)

	proof, err := tree.ConsistencyProof(subRoot, 4)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, proof))
}

func TestConsistencyProofRejectsOutOfRangeSublen(t *testing.T) {
	tree := buildTree(t, 5)
	root, err := tree.RootHash()
	require.NoError(t, err)

	proof, err := tree.ConsistencyProof([]byte("whatever"), 0)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, proof))

	proof, err = tree.ConsistencyProof([]byte("whatever"), 100)
	require.NoError(t, err)
	assert.False(t, ValidateProof(root, proof))
}

// TestConsistencyProofEqualLength: sublen == length degenerates to the
// tree's own root.
func TestConsistencyProofEqualLength(t *testing.T) {
	tree := buildTree(t, 6)
	root, err := tree.RootHash()
	require.NoError(t, err)

	proof, err := tree.ConsistencyProof(root, 6)
	require.NoError(t, err)
	assert.True(t, ValidateProof(root, proof))
}

// A seven-record tree's consistency proof from a
// three-record prefix whose rightmost principal sub-root (the lone leaf at
// index 2) is nested inside, rather than equal to, the four-leaf principal
// sub-root covering indices 0-3 — the case a naive single-bridge-digest
// design gets wrong.
func TestConsistencyProofNestedPrefixSubRoot(t *testing.T) {
	tree := buildTree(t, 7)
	root, err := tree.RootHash()
	require.NoError(t, err)

	prefix := buildTree(t, 3)
	subRoot, err := prefix.RootHash()
	require.NoError(t, err)

	proof, err := tree.ConsistencyProof(subRoot, 3)
	require.NoError(t, err)
	assert.True(t, ValidateProof(root, proof))
}
