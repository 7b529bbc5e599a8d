package handler

import (
	"point-anchor/internal/adapter/http/dto"
	"point-anchor/internal/core/ports"
	"point-anchor/pkg/apperror"
	"point-anchor/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes the anchor wallet's address and balance.
type WalletHandler struct {
	anchor ports.ChainAnchor
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(anchor ports.ChainAnchor) *WalletHandler {
	return &WalletHandler{anchor: anchor}
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	balance, err := h.anchor.Balance(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, dto.WalletResponse{
		Address:  h.anchor.Address(),
		Lovelace: balance,
	})
}
