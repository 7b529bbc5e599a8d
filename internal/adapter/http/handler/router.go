package handler

import (
	"point-anchor/internal/adapter/http/middleware"
	"point-anchor/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CommitTrigger  CommitTrigger
	VerifySvc      ports.VerifyService
	CommitRepo     ports.CommitRepository
	Anchor         ports.ChainAnchor
	HealthCheckers []ports.HealthChecker
	APIKey         string // guards the mutating commit trigger; empty disables
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	commitHandler := NewCommitHandler(deps.CommitTrigger, deps.CommitRepo, deps.Anchor)
	commits := v1.Group("/commits")
	{
		commits.POST("", middleware.APIKeyAuth(deps.APIKey), commitHandler.Commit)
		commits.GET("/:id", commitHandler.GetCommit)
		commits.GET("/:id/metadata", commitHandler.GetMetadata)
	}

	verifyHandler := NewVerifyHandler(deps.VerifySvc)
	v1.POST("/verify", verifyHandler.Verify)
	v1.GET("/transactions/:id/verify", verifyHandler.VerifyOne)

	walletHandler := NewWalletHandler(deps.Anchor)
	v1.GET("/wallet", walletHandler.GetWallet)

	return r
}
