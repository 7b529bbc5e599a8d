package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// memTx is a no-op pgx.Tx; the in-memory store applies writes immediately.
type memTx struct{ pgx.Tx }

func (memTx) Commit(_ context.Context) error   { return nil }
func (memTx) Rollback(_ context.Context) error { return nil }

// inMemoryStore backs every repository port with one shared, locked state so
// the full stack can run without PostgreSQL.
type inMemoryStore struct {
	mu           sync.RWMutex
	transactions []domain.PointTransaction
	commits      map[string]domain.MerkleCommit
	proofs       map[string][]domain.MerkleProof // keyed by transaction id
	intents      map[string]domain.CommitIntent
}

func newInMemoryStore() *inMemoryStore {
	return &inMemoryStore{
		commits: make(map[string]domain.MerkleCommit),
		proofs:  make(map[string][]domain.MerkleProof),
		intents: make(map[string]domain.CommitIntent),
	}
}

func (s *inMemoryStore) seed(txs ...domain.PointTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txs...)
}

func (s *inMemoryStore) tamper(txID string, mutate func(*domain.PointTransaction)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == txID {
			mutate(&s.transactions[i])
			return
		}
	}
}

// --- Transactor ---

func (s *inMemoryStore) Begin(_ context.Context, _ ports.SessionOptions) (pgx.Tx, error) {
	return memTx{}, nil
}

// --- TransactionRepository ---

func (s *inMemoryStore) uncommittedLocked() []domain.PointTransaction {
	var out []domain.PointTransaction
	for _, tx := range s.transactions {
		if len(s.proofs[tx.ID]) == 0 {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *inMemoryStore) OldestUncommitted(_ context.Context, _ pgx.Tx) (*domain.PointTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uncommitted := s.uncommittedLocked()
	if len(uncommitted) == 0 {
		return nil, nil
	}
	tx := uncommitted[0]
	return &tx, nil
}

func (s *inMemoryStore) UncommittedSince(_ context.Context, _ pgx.Tx, since time.Time) ([]domain.PointTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PointTransaction
	for _, tx := range s.uncommittedLocked() {
		if !tx.CreatedAt.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *inMemoryStore) UncommittedInPeriod(_ context.Context, _ pgx.Tx, start, end time.Time) ([]domain.PointTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PointTransaction
	for _, tx := range s.uncommittedLocked() {
		if !tx.CreatedAt.Before(start) && !tx.CreatedAt.After(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *inMemoryStore) GetByID(_ context.Context, id string) (*domain.PointTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			out := tx
			return &out, nil
		}
	}
	return nil, nil
}

// --- CommitRepository ---

func (s *inMemoryStore) NextLabel(_ context.Context, _ pgx.Tx) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max int64
	for _, c := range s.commits {
		if c.Label > max {
			max = c.Label
		}
	}
	return max + 1, nil
}

func (s *inMemoryStore) Create(_ context.Context, _ pgx.Tx, commit *domain.MerkleCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.commits[commit.ID]; exists {
		return fmt.Errorf("duplicate commit id %s", commit.ID)
	}
	for _, c := range s.commits {
		if c.Label == commit.Label {
			return fmt.Errorf("duplicate label %d", commit.Label)
		}
	}
	s.commits[commit.ID] = *commit
	return nil
}

func (s *inMemoryStore) CreateProofs(_ context.Context, _ pgx.Tx, proofs []domain.MerkleProof) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range proofs {
		s.proofs[p.TxID] = append(s.proofs[p.TxID], p)
	}
	return nil
}

func (s *inMemoryStore) GetCommitByID(_ context.Context, id string) (*domain.MerkleCommit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commits[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *inMemoryStore) ProofsForTransaction(_ context.Context, txID string) ([]domain.MerkleProof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]domain.MerkleProof(nil), s.proofs[txID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows, nil
}

func (s *inMemoryStore) CommitForTransaction(_ context.Context, txID string) (*domain.MerkleCommit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.proofs[txID]
	if len(rows) == 0 {
		return nil, nil
	}
	c, ok := s.commits[rows[0].CommitID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// commitRepo adapts inMemoryStore to ports.CommitRepository; GetByID clashes
// with the transaction repo's method name, so the commit view is separate.
type commitRepo struct{ *inMemoryStore }

func (r commitRepo) GetByID(ctx context.Context, id string) (*domain.MerkleCommit, error) {
	return r.GetCommitByID(ctx, id)
}

// --- IntentRepository ---

type intentRepo struct{ store *inMemoryStore }

func (r intentRepo) Create(_ context.Context, intent *domain.CommitIntent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.intents[intent.ID] = *intent
	return nil
}

func (r intentRepo) setStatus(id string, status domain.IntentStatus, anchorTxID *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	in, ok := r.store.intents[id]
	if !ok {
		return fmt.Errorf("intent %s not found", id)
	}
	in.Status = status
	if anchorTxID != nil {
		in.AnchorTxID = anchorTxID
	}
	in.UpdatedAt = time.Now().UTC()
	r.store.intents[id] = in
	return nil
}

func (r intentRepo) MarkSubmitted(_ context.Context, id, anchorTxID string) error {
	return r.setStatus(id, domain.IntentStatusSubmitted, &anchorTxID)
}

func (r intentRepo) MarkCompleted(_ context.Context, id string) error {
	return r.setStatus(id, domain.IntentStatusCompleted, nil)
}

func (r intentRepo) MarkFailed(_ context.Context, id string) error {
	return r.setStatus(id, domain.IntentStatusFailed, nil)
}

func (r intentRepo) ListSubmitted(_ context.Context) ([]domain.CommitIntent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.CommitIntent
	for _, in := range r.store.intents {
		if in.Status == domain.IntentStatusSubmitted {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- ChainAnchor ---

// fakeAnchor anchors into a map instead of a chain.
type fakeAnchor struct {
	mu       sync.Mutex
	metadata map[string]ports.AnchorMetadata // keyed by anchor tx id
	commits  int
}

func newFakeAnchor() *fakeAnchor {
	return &fakeAnchor{metadata: make(map[string]ports.AnchorMetadata)}
}

func (a *fakeAnchor) Commit(_ context.Context, label int64, payload string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commits++
	id := fmt.Sprintf("anchor_tx_%d", label)
	a.metadata[id] = ports.AnchorMetadata{Label: label, Payload: payload}
	return id, nil
}

func (a *fakeAnchor) WaitForConfirmation(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	return true, nil
}

func (a *fakeAnchor) GetMetadata(_ context.Context, anchorTxID string) (*ports.AnchorMetadata, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	meta, ok := a.metadata[anchorTxID]
	if !ok {
		return nil, fmt.Errorf("no metadata for %s", anchorTxID)
	}
	return &meta, nil
}

func (a *fakeAnchor) Address() string { return "addr_test1integration" }

func (a *fakeAnchor) Balance(_ context.Context) (int64, error) { return 42_000_000, nil }
