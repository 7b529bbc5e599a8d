// Package merkle implements the deterministic hashing, tree construction and
// proof replay used to anchor point-transfer batches. Everything here is pure:
// no I/O, no clocks, no randomness.
//
// Construction rules:
//   - leaves are hashed in input order and never reordered;
//   - within a level, each adjacent pair is sorted byte-wise (smaller first)
//     before concatenation and re-hashing, so replay needs no position data;
//   - an odd trailing node is promoted unchanged to the next level and
//     contributes no proof step at that level.
package merkle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"point-anchor/internal/core/domain"
)

// Step is one element of an inclusion path: the sibling hash and the side it
// occupied at generation time. Replay ignores Position (sorted-pair rule).
type Step struct {
	Sibling  string
	Position domain.Position
}

// canonicalTransaction fixes the byte representation of a transaction for
// hashing. Field order is the lexicographic order of the JSON keys; CreatedAt
// is rendered separately as a fixed ISO-8601 string.
type canonicalTransaction struct {
	CreatedAt       string `json:"createdAt"`
	CreatedBy       string `json:"createdBy"`
	FromPointChange int64  `json:"fromPointChange"`
	FromWallet      string `json:"fromWallet"`
	ID              string `json:"id"`
	Reason          string `json:"reason"`
	ToPointChange   int64  `json:"toPointChange"`
	ToWallet        string `json:"toWallet"`
}

// CanonicalBytes returns the deterministic byte string a leaf hash is computed
// over. The same logical transaction always serializes identically regardless
// of field iteration order or source timezone.
func CanonicalBytes(tx domain.PointTransaction) []byte {
	c := canonicalTransaction{
		CreatedAt:       tx.CreatedAt.UTC().Format("2006-01-02T15:04:05.000") + "Z",
		CreatedBy:       tx.CreatedBy,
		FromPointChange: tx.FromPointChange,
		FromWallet:      tx.FromWallet,
		ID:              tx.ID,
		Reason:          tx.Reason,
		ToPointChange:   tx.ToPointChange,
		ToWallet:        tx.ToWallet,
	}
	// Marshal of a flat struct with string/int fields cannot fail.
	b, _ := json.Marshal(c)
	return b
}

// LeafHash returns the SHA-256 of the transaction's canonical bytes.
func LeafHash(tx domain.PointTransaction) []byte {
	sum := sha256.Sum256(CanonicalBytes(tx))
	return sum[:]
}

// Tree is an immutable Merkle tree over a batch of transactions.
type Tree struct {
	levels  [][][]byte     // levels[0] = leaves, last level = [root]
	leafIdx map[string]int // transaction id -> leaf position
}

// Build constructs a tree over the batch, leaves in input order. An empty
// batch is an error; a single transaction yields a tree whose root equals the
// leaf hash and whose proofs are empty.
func Build(txs []domain.PointTransaction) (*Tree, error) {
	if len(txs) == 0 {
		return nil, fmt.Errorf("merkle: cannot build a tree over zero transactions")
	}

	leaves := make([][]byte, len(txs))
	leafIdx := make(map[string]int, len(txs))
	for i, tx := range txs {
		leaves[i] = LeafHash(tx)
		if _, dup := leafIdx[tx.ID]; dup {
			return nil, fmt.Errorf("merkle: duplicate transaction id %q in batch", tx.ID)
		}
		leafIdx[tx.ID] = i
	}

	levels := [][][]byte{leaves}
	for level := leaves; len(level) > 1; {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, hashPair(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels, leafIdx: leafIdx}, nil
}

// Root returns the top hash as lowercase hex.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	return hex.EncodeToString(top[0])
}

// Proof returns the ordered inclusion path for a transaction id.
func (t *Tree) Proof(txID string) ([]Step, error) {
	idx, ok := t.leafIdx[txID]
	if !ok {
		return nil, fmt.Errorf("merkle: transaction %q is not a leaf of this tree", txID)
	}

	var steps []Step
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		sib := idx ^ 1
		if sib < len(level) {
			pos := domain.PositionRight
			if sib < idx {
				pos = domain.PositionLeft
			}
			steps = append(steps, Step{
				Sibling:  hex.EncodeToString(level[sib]),
				Position: pos,
			})
		}
		// A promoted odd node keeps its value and lands at idx/2 as well.
		idx /= 2
	}
	return steps, nil
}

// AllProofs returns the inclusion path of every leaf, keyed by transaction id.
// Used by the batch cycle to avoid walking the tree once per transaction.
func (t *Tree) AllProofs() map[string][]Step {
	proofs := make(map[string][]Step, len(t.leafIdx))
	for txID := range t.leafIdx {
		steps, _ := t.Proof(txID)
		proofs[txID] = steps
	}
	return proofs
}

// Size returns the number of leaves.
func (t *Tree) Size() int {
	return len(t.levels[0])
}

// Verify recomputes the root from the transaction's current fields and the
// proof path, and compares it against expectedRoot after hex normalization.
// It returns false — never an error — for an empty or malformed expected root
// or for malformed sibling hashes, so a tampered or missing anchored value
// degrades to "not verified" rather than aborting a batch.
func Verify(tx domain.PointTransaction, steps []Step, expectedRoot string) bool {
	want := normalizeHex(expectedRoot)
	if want == "" {
		return false
	}

	h := LeafHash(tx)
	for _, step := range steps {
		sib, err := hex.DecodeString(normalizeHex(step.Sibling))
		if err != nil || len(sib) == 0 {
			return false
		}
		h = hashPair(h, sib)
	}

	return hex.EncodeToString(h) == want
}

// hashPair hashes two nodes with the sorted-pair rule: byte-wise smaller
// operand first.
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	h := sha256.New()
	h.Write(a)
	h.Write(b)
	return h.Sum(nil)
}

func normalizeHex(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "0x")))
}
