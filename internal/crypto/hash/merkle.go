package hash

import tallowcrypto "tallow/internal/crypto"

// leafTag and nodeTag domain-separate leaf hashes from interior-node hashes
// so that a leaf can never be replayed as an interior node (the classic
// second-preimage weakness of naive Merkle trees).
const (
	leafTag = "tallow.merkle.leaf.v1"
	nodeTag = "tallow.merkle.node.v1"
)

// MerkleTree is a binary hash tree over an ordered list of leaves, built
// with BLAKE3 in keyed mode for domain separation between leaf and node
// hashing.
type MerkleTree struct {
	levels [][][Size]byte // levels[0] = leaves, levels[last] = {root}
}

// Build constructs a MerkleTree over leaves. An odd level is completed by
// duplicating its last node, the common convention that keeps proof
// construction simple at the cost of a known (and harmless) collision
// between a duplicated pair and a single leaf appearing twice.
func Build(leaves [][]byte) *MerkleTree {
	if len(leaves) == 0 {
		return &MerkleTree{levels: [][][Size]byte{{Hash([]byte(leafTag))}}}
	}

	level := make([][Size]byte, len(leaves))
	for i, l := range leaves {
		level[i] = hashLeaf(l)
	}

	tree := &MerkleTree{levels: [][][Size]byte{level}}
	for len(level) > 1 {
		level = nextLevel(level)
		tree.levels = append(tree.levels, level)
	}
	return tree
}

func hashLeaf(data []byte) [Size]byte {
	return DeriveKey(leafTag, data)
}

func hashNode(left, right [Size]byte) [Size]byte {
	buf := make([]byte, 0, 2*Size)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return DeriveKey(nodeTag, buf)
}

func nextLevel(level [][Size]byte) [][Size]byte {
	if len(level)%2 == 1 {
		level = append(level, level[len(level)-1])
	}
	out := make([][Size]byte, len(level)/2)
	for i := range out {
		out[i] = hashNode(level[2*i], level[2*i+1])
	}
	return out
}

// Root returns the tree's root digest.
func (t *MerkleTree) Root() [Size]byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// MerkleProof is an inclusion proof: the sibling hash at each level from
// leaf to root, plus which side the sibling sits on.
type MerkleProof struct {
	Siblings  [][Size]byte
	RightSide []bool // RightSide[i] == true means Siblings[i] is the right child
}

// Proof builds an inclusion proof for the leaf at index.
func (t *MerkleTree) Proof(index int) (*MerkleProof, error) {
	if index < 0 || index >= len(t.levels[0]) {
		return nil, tallowcrypto.New(tallowcrypto.InvalidKey, "merkle leaf index out of range", nil)
	}

	proof := &MerkleProof{}
	idx := index
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		siblingIdx := idx ^ 1
		if siblingIdx >= len(level) {
			siblingIdx = idx // duplicated tail node
		}
		proof.Siblings = append(proof.Siblings, level[siblingIdx])
		proof.RightSide = append(proof.RightSide, siblingIdx > idx)
		idx /= 2
	}
	return proof, nil
}

// VerifyProof checks that leaf, combined with proof, reconstructs root.
func VerifyProof(leaf []byte, proof *MerkleProof, root [Size]byte) bool {
	h := hashLeaf(leaf)
	for i, sibling := range proof.Siblings {
		if proof.RightSide[i] {
			h = hashNode(h, sibling)
		} else {
			h = hashNode(sibling, h)
		}
	}
	return h == root
}
