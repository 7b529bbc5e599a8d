package handler

import (
	"point-anchor/internal/adapter/http/dto"
	"point-anchor/internal/core/ports"
	"point-anchor/pkg/apperror"
	"point-anchor/pkg/response"

	"github.com/gin-gonic/gin"
)

// VerifyHandler handles verification endpoints.
type VerifyHandler struct {
	verifySvc ports.VerifyService
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(verifySvc ports.VerifyService) *VerifyHandler {
	return &VerifyHandler{verifySvc: verifySvc}
}

// Verify handles POST /api/v1/verify: re-verify a batch of transaction ids.
// The call succeeds even when every id fails; failures are per item.
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrEmptyVerifyRequest())
		return
	}

	results := h.verifySvc.Verify(c.Request.Context(), req.TxIDs)
	items := make([]dto.VerifyItemResponse, len(results))
	for i, r := range results {
		items[i] = dto.ToVerifyItemResponse(r)
	}
	response.OK(c, items)
}

// VerifyOne handles GET /api/v1/transactions/:id/verify.
func (h *VerifyHandler) VerifyOne(c *gin.Context) {
	results := h.verifySvc.Verify(c.Request.Context(), []string{c.Param("id")})
	response.OK(c, dto.ToVerifyItemResponse(results[0]))
}
