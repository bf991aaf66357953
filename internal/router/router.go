package router

import (
	"github.com/blues/cfe/internal/config"
	"github.com/blues/cfe/internal/engine"
	"github.com/blues/cfe/internal/handler"
	"github.com/gin-gonic/gin"
)

func Setup(eng *engine.Engine, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "campaign-escrow-engine",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignHandler := handler.NewCampaignHandler(eng)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.DELETE("/:id", campaignHandler.Cancel)
			campaigns.GET("/:id/milestones", campaignHandler.GetCampaignMilestones)
			campaigns.GET("/:id/contributors", campaignHandler.GetCampaignContributors)
			campaigns.GET("/:id/contributions/:address", campaignHandler.GetContribution)
			campaigns.POST("/:id/contributions", campaignHandler.Contribute)
			campaigns.POST("/:id/finalize", campaignHandler.Finalize)
			campaigns.POST("/:id/withdrawals", campaignHandler.Withdraw)
			campaigns.POST("/:id/refunds", campaignHandler.Refund)
		}

		users := v1.Group("/users")
		{
			users.GET("/:address/campaigns", campaignHandler.GetUserCreatedCampaigns)
			users.GET("/:address/contributions", campaignHandler.GetUserContributions)
		}

		platformHandler := handler.NewPlatformHandler(eng)
		platform := v1.Group("/platform")
		{
			platform.GET("/fee", platformHandler.GetFee)
			platform.PUT("/fee", platformHandler.UpdateFee)
			platform.GET("/stats", platformHandler.GetStats)
			platform.GET("/campaigns/count", platformHandler.GetTotalCampaigns)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
