package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"point-anchor/internal/adapter/http/dto"
	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"
	"point-anchor/internal/core/ports/mocks"
	"point-anchor/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubTrigger is a canned CommitTrigger.
type stubTrigger struct {
	result *domain.CommitResult
	err    error
	calls  int
}

func (s *stubTrigger) RunOnce(_ context.Context) (*domain.CommitResult, error) {
	s.calls++
	return s.result, s.err
}

// stubChecker is a canned HealthChecker.
type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(_ context.Context) error { return s.err }
func (s stubChecker) Name() string                 { return s.name }

func testRouter(t *testing.T, deps RouterDeps) *gin.Engine {
	t.Helper()
	deps.Logger = zerolog.Nop()
	return SetupRouter(deps)
}

// --- Commit Handler Tests ---

func TestCommit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	trigger := &stubTrigger{result: &domain.CommitResult{
		AnchorTxID:    "anchor_tx_1",
		Label:         4,
		RootHash:      "839b38b7",
		PeriodStart:   now.Add(-time.Hour),
		PeriodEnd:     now,
		TxCount:       12,
		AnchorAddress: "addr_test1anchor",
	}}
	r := testRouter(t, RouterDeps{
		CommitTrigger: trigger,
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/commits", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "anchor_tx_1", data["anchor_tx_id"])
	assert.Equal(t, float64(4), data["label"])
	assert.Equal(t, float64(12), data["tx_count"])
	assert.Equal(t, "addr_test1anchor", data["anchor_address"])
	assert.Equal(t, 1, trigger.calls)
}

func TestCommit_NothingToCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := &stubTrigger{result: &domain.CommitResult{}}
	r := testRouter(t, RouterDeps{
		CommitTrigger: trigger,
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/commits", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["tx_count"])
	assert.NotContains(t, data, "anchor_tx_id")
}

func TestCommit_LockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := &stubTrigger{err: apperror.ErrLockHeld()}
	r := testRouter(t, RouterDeps{
		CommitTrigger: trigger,
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/commits", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_002", resp["error_code"])
}

func TestCommit_APIKeyGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := &stubTrigger{result: &domain.CommitResult{}}
	r := testRouter(t, RouterDeps{
		CommitTrigger: trigger,
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
		APIKey:        "secret-key",
	})

	// Missing key
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/commits", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, trigger.calls)

	// Correct key
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commits", nil)
	req.Header.Set("X-API-Key", "secret-key")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, trigger.calls)
}

func TestGetCommit_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	commitRepo := mocks.NewMockCommitRepository(ctrl)
	now := time.Now().UTC()
	commitRepo.EXPECT().GetByID(gomock.Any(), "anchor_tx_1").Return(&domain.MerkleCommit{
		ID:          "anchor_tx_1",
		RootHash:    "839b38b7",
		Label:       4,
		PeriodStart: now.Add(-time.Hour),
		PeriodEnd:   now,
		CommittedAt: now,
	}, nil)

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    commitRepo,
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/commits/anchor_tx_1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "anchor_tx_1", data["anchor_tx_id"])
	assert.Equal(t, "839b38b7", data["root_hash"])
}

func TestGetCommit_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	commitRepo := mocks.NewMockCommitRepository(ctrl)
	commitRepo.EXPECT().GetByID(gomock.Any(), "unknown").Return(nil, nil)

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    commitRepo,
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/commits/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LEDGER_002", resp["error_code"])
}

func TestGetMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anchor := mocks.NewMockChainAnchor(ctrl)
	anchor.EXPECT().GetMetadata(gomock.Any(), "anchor_tx_1").
		Return(&ports.AnchorMetadata{Label: 4, Payload: "839b38b7"}, nil)

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        anchor,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/commits/anchor_tx_1/metadata", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["label"])
	assert.Equal(t, "839b38b7", data["payload"])
}

func TestGetMetadata_Unavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anchor := mocks.NewMockChainAnchor(ctrl)
	anchor.EXPECT().GetMetadata(gomock.Any(), "anchor_tx_1").
		Return(nil, apperror.ErrMetadataUnavailable(errors.New("indexer down")))

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        anchor,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/commits/anchor_tx_1/metadata", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CHAIN_004", resp["error_code"])
}

// --- Verify Handler Tests ---

func TestVerify_Batch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifySvc := mocks.NewMockVerifyService(ctrl)
	verifySvc.EXPECT().Verify(gomock.Any(), []string{"tx_a", "tx_b"}).Return([]domain.VerifyResult{
		{TxID: "tx_a", Status: domain.VerifyStatusVerified, AnchorTxID: "anchor_tx_1", RootHash: "839b38b7", Label: 4},
		{TxID: "tx_b", Status: domain.VerifyStatusNotVerified},
	})

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     verifySvc,
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	body, _ := json.Marshal(dto.VerifyRequest{TxIDs: []string{"tx_a", "tx_b"}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "verified", first["status"])
	second := items[1].(map[string]interface{})
	assert.Equal(t, "not_verified", second["status"])
	assert.NotContains(t, second, "anchor_tx_id")
}

func TestVerify_EmptyRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	body := []byte(`{"tx_ids": []}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VERIFY_001", resp["error_code"])
}

func TestVerifyOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifySvc := mocks.NewMockVerifyService(ctrl)
	verifySvc.EXPECT().Verify(gomock.Any(), []string{"tx_a"}).Return([]domain.VerifyResult{
		{TxID: "tx_a", Status: domain.VerifyStatusVerified, AnchorTxID: "anchor_tx_1", Label: 4},
	})

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     verifySvc,
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/tx_a/verify", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "tx_a", data["tx_id"])
	assert.Equal(t, "verified", data["status"])
}

// --- Wallet Handler Tests ---

func TestGetWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anchor := mocks.NewMockChainAnchor(ctrl)
	anchor.EXPECT().Balance(gomock.Any()).Return(int64(123456789), nil)
	anchor.EXPECT().Address().Return("addr_test1anchor")

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        anchor,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "addr_test1anchor", data["address"])
	assert.Equal(t, float64(123456789), data["lovelace"])
}

// --- Health Tests ---

func TestHealthCheck_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testRouter(t, RouterDeps{
		CommitTrigger:  &stubTrigger{},
		VerifySvc:      mocks.NewMockVerifyService(ctrl),
		CommitRepo:     mocks.NewMockCommitRepository(ctrl),
		Anchor:         mocks.NewMockChainAnchor(ctrl),
		HealthCheckers: []ports.HealthChecker{stubChecker{name: "postgres"}, stubChecker{name: "redis"}},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testRouter(t, RouterDeps{
		CommitTrigger: &stubTrigger{},
		VerifySvc:     mocks.NewMockVerifyService(ctrl),
		CommitRepo:    mocks.NewMockCommitRepository(ctrl),
		Anchor:        mocks.NewMockChainAnchor(ctrl),
		HealthCheckers: []ports.HealthChecker{
			stubChecker{name: "postgres"},
			stubChecker{name: "redis", err: errors.New("connection refused")},
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	redis := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
}
