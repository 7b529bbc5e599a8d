package handler

import (
	"context"

	"point-anchor/internal/adapter/http/dto"
	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"
	"point-anchor/pkg/apperror"
	"point-anchor/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommitTrigger runs one lock-guarded commit cycle on demand. Satisfied by
// the scheduler so the HTTP trigger and the ticker share the run lock.
type CommitTrigger interface {
	RunOnce(ctx context.Context) (*domain.CommitResult, error)
}

// CommitHandler handles commit-cycle endpoints.
type CommitHandler struct {
	trigger    CommitTrigger
	commitRepo ports.CommitRepository
	anchor     ports.ChainAnchor
}

// NewCommitHandler creates a new CommitHandler.
func NewCommitHandler(trigger CommitTrigger, commitRepo ports.CommitRepository, anchor ports.ChainAnchor) *CommitHandler {
	return &CommitHandler{
		trigger:    trigger,
		commitRepo: commitRepo,
		anchor:     anchor,
	}
}

// Commit handles POST /api/v1/commits: run one batch cycle now.
func (h *CommitHandler) Commit(c *gin.Context) {
	result, err := h.trigger.RunOnce(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.IsEmpty() {
		response.OK(c, dto.ToCommitResponse(result))
		return
	}
	response.Created(c, dto.ToCommitResponse(result))
}

// GetCommit handles GET /api/v1/commits/:id: the stored record of one
// anchored batch, keyed by anchor transaction id.
func (h *CommitHandler) GetCommit(c *gin.Context) {
	commit, err := h.commitRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if commit == nil {
		response.Error(c, apperror.ErrNotFound("commit"))
		return
	}
	response.OK(c, dto.ToCommitDetailResponse(commit))
}

// GetMetadata handles GET /api/v1/commits/:id/metadata: the on-chain readback
// of the anchored value.
func (h *CommitHandler) GetMetadata(c *gin.Context) {
	id := c.Param("id")
	meta, err := h.anchor.GetMetadata(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MetadataResponse{
		AnchorTxID: id,
		Label:      meta.Label,
		Payload:    meta.Payload,
	})
}
