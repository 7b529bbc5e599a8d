package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"point-anchor/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommit() *domain.MerkleCommit {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.MerkleCommit{
		ID:          "9f2a77c1d04e55aab3",
		RootHash:    "839b38b70e24771bc5e7f76e660b48d3e1a8869096da70b050b96b7ad3254081",
		Label:       3,
		PeriodStart: now.Add(-7 * 24 * time.Hour),
		PeriodEnd:   now,
		CommittedAt: now,
	}
}

func commitColumns() []string {
	return []string{"id", "root_hash", "label", "period_start", "period_end", "committed_at"}
}

func commitRow(c *domain.MerkleCommit) *pgxmock.Rows {
	return pgxmock.NewRows(commitColumns()).
		AddRow(c.ID, c.RootHash, c.Label, c.PeriodStart, c.PeriodEnd, c.CommittedAt)
}

func TestCommitRepo_NextLabel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(label\), 0\) \+ 1 FROM t_merkle_commits`).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(int64(4)))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	label, err := repo.NextLabel(context.Background(), dbTx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)
	commit := newTestCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO t_merkle_commits").
		WithArgs(commit.ID, commit.RootHash, commit.Label,
			commit.PeriodStart, commit.PeriodEnd, commit.CommittedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, commit)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_CreateProofs_SingleChunk(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)
	proofs := []domain.MerkleProof{
		{CommitID: "c1", TxID: "tx_b", Index: 0, Sibling: "aa", Position: domain.PositionLeft},
		{CommitID: "c1", TxID: "tx_b", Index: 1, Sibling: "bb", Position: domain.PositionRight},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO t_merkle_proofs").
		WithArgs("c1", "tx_b", 0, "aa", "LEFT", "c1", "tx_b", 1, "bb", "RIGHT").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.CreateProofs(context.Background(), dbTx, proofs)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_CreateProofs_ChunksAtBulkLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	// 2500 rows -> inserts of 1000, 1000, 500.
	proofs := make([]domain.MerkleProof, 2500)
	for i := range proofs {
		proofs[i] = domain.MerkleProof{
			CommitID: "c1",
			TxID:     fmt.Sprintf("tx_%d", i),
			Index:    0,
			Sibling:  "ab",
			Position: domain.PositionLeft,
		}
	}

	anyArgs := func(n int) []interface{} {
		args := make([]interface{}, n)
		for i := range args {
			args[i] = pgxmock.AnyArg()
		}
		return args
	}

	mock.ExpectBegin()
	for _, rows := range []int{1000, 1000, 500} {
		mock.ExpectExec("INSERT INTO t_merkle_proofs").
			WithArgs(anyArgs(rows * 5)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.CreateProofs(context.Background(), dbTx, proofs)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_CreateProofs_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	mock.ExpectBegin()
	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	// No statements expected.
	err = repo.CreateProofs(context.Background(), dbTx, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM t_merkle_commits WHERE id").
		WithArgs("unknown").
		WillReturnRows(pgxmock.NewRows(commitColumns()))

	result, err := repo.GetByID(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, result, "absence is data for the recovery scan, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_ProofsForTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	rows := pgxmock.NewRows([]string{"commit_id", "tx_id", "path_index", "sibling", "position"}).
		AddRow("c1", "tx_b", 0, "aa", "LEFT").
		AddRow("c1", "tx_b", 1, "bb", "RIGHT")

	mock.ExpectQuery("SELECT .+ FROM t_merkle_proofs").
		WithArgs("tx_b").
		WillReturnRows(rows)

	proofs, err := repo.ProofsForTransaction(context.Background(), "tx_b")
	require.NoError(t, err)
	require.Len(t, proofs, 2)
	assert.Equal(t, 0, proofs[0].Index)
	assert.Equal(t, domain.PositionLeft, proofs[0].Position)
	assert.Equal(t, 1, proofs[1].Index)
	assert.Equal(t, domain.PositionRight, proofs[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_ProofsForTransaction_Uncommitted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM t_merkle_proofs").
		WithArgs("tx_new").
		WillReturnRows(pgxmock.NewRows([]string{"commit_id", "tx_id", "path_index", "sibling", "position"}))

	proofs, err := repo.ProofsForTransaction(context.Background(), "tx_new")
	assert.NoError(t, err)
	assert.Empty(t, proofs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitRepo_CommitForTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommitRepo(mock)
	commit := newTestCommit()

	mock.ExpectQuery("SELECT .+ FROM t_merkle_commits c").
		WithArgs("tx_b").
		WillReturnRows(commitRow(commit))

	result, err := repo.CommitForTransaction(context.Background(), "tx_b")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, commit.ID, result.ID)
	assert.Equal(t, commit.RootHash, result.RootHash)
	assert.Equal(t, commit.Label, result.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
