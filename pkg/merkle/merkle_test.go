package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildEmptyTreeIsZeroRoot(t *testing.T) {
	tree := Build(nil)
	require.Equal(t, ZeroRoot, tree.Root())
	require.Len(t, ZeroRoot, 64)
}

func TestBuildOddLeafCountDuplicatesLast(t *testing.T) {
	leaves := []string{sha256Hex([]byte("a")), sha256Hex([]byte("b")), sha256Hex([]byte("c"))}
	tree := Build(leaves)

	n1 := nodeHash(leaves[0], leaves[1])
	n2 := nodeHash(leaves[2], leaves[2])
	want := nodeHash(n1, n2)

	require.Equal(t, want, tree.Root())
}

func TestProofRoundTrip(t *testing.T) {
	leaves := make([]string, 0, 7)
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		leaves = append(leaves, sha256Hex([]byte(s)))
	}
	tree := Build(leaves)

	for i := range leaves {
		proof, err := tree.Proof(i)
		require.NoError(t, err)
		require.True(t, VerifyProof(proof), "leaf %d should verify", i)
	}
}

func TestProofRejectsTamperedLeaf(t *testing.T) {
	leaves := []string{sha256Hex([]byte("a")), sha256Hex([]byte("b")), sha256Hex([]byte("c")), sha256Hex([]byte("d"))}
	tree := Build(leaves)

	proof, err := tree.Proof(1)
	require.NoError(t, err)
	require.True(t, VerifyProof(proof))

	proof.Leaf = sha256Hex([]byte("tampered"))
	require.False(t, VerifyProof(proof))
}

func TestProofOutOfRange(t *testing.T) {
	tree := Build([]string{sha256Hex([]byte("a"))})
	_, err := tree.Proof(5)
	require.Error(t, err)
}
