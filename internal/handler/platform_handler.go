package handler

import (
	"net/http"

	"github.com/blues/cfe/internal/engine"
	"github.com/gin-gonic/gin"
)

// PlatformHandler 平台级处理器
type PlatformHandler struct {
	engine *engine.Engine
}

// NewPlatformHandler 创建平台处理器
func NewPlatformHandler(eng *engine.Engine) *PlatformHandler {
	return &PlatformHandler{engine: eng}
}

// UpdateFee 调整平台费率，仅平台所有者可调用
func (h *PlatformHandler) UpdateFee(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.UpdatePlatformFee(caller, req.FeeBasisPoints); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "平台费率已更新", gin.H{
		"fee_basis_points": req.FeeBasisPoints,
	})
}

// GetFee 当前平台费率
func (h *PlatformHandler) GetFee(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取平台费率成功", gin.H{
		"fee_basis_points": h.engine.PlatformFeeBasisPoints(),
	})
}

// GetStats 平台聚合统计
func (h *PlatformHandler) GetStats(c *gin.Context) {
	stats := h.engine.GetPlatformStats()
	SuccessResponse(c, http.StatusOK, "获取平台统计成功", PlatformStatsResponse{
		TotalCampaigns:          stats.TotalCampaigns,
		TotalRaisedAllTime:      stats.TotalRaisedAllTime.String(),
		SuccessfulCampaignCount: stats.SuccessfulCampaignCount,
	})
}

// GetTotalCampaigns 平台累计活动数
func (h *PlatformHandler) GetTotalCampaigns(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取活动总数成功", gin.H{
		"total_campaigns": h.engine.GetTotalCampaigns(),
	})
}
