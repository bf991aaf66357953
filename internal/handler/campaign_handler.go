package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfe/internal/engine"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	engine *engine.Engine
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(eng *engine.Engine) *CampaignHandler {
	return &CampaignHandler{engine: eng}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	creator, ok := callerAddress(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fundingGoal, ok := parseAmount(req.FundingGoal)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的目标金额")
		return
	}
	minContribution, ok := parseAmount(req.MinContribution)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的最小出资金额")
		return
	}
	maxContribution, ok := parseAmount(req.MaxContribution)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的最大出资金额")
		return
	}

	id, err := h.engine.CreateCampaign(
		creator,
		req.Title, req.Description, req.MetadataURI,
		fundingGoal, req.DurationDays,
		minContribution, maxContribution,
		ToMilestonePlans(req.Milestones),
	)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{"campaign_id": id})
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.engine.GetCampaign(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	// 读侧补充"已过截止时间待结算"视图
	due, _ := h.engine.FinalizationDue(id)

	SuccessResponse(c, http.StatusOK, "获取活动详情成功", gin.H{
		"campaign":         ToCampaignResponse(campaign),
		"finalization_due": due,
	})
}

// ListCampaigns 分页获取活动列表
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 || size > 100 {
		size = 20
	}

	campaigns := h.engine.ListCampaigns((page-1)*size, size)
	list := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		list[i] = ToCampaignResponse(campaign)
	}

	SuccessResponse(c, http.StatusOK, "获取活动列表成功", gin.H{
		"campaigns": list,
		"page":      page,
		"size":      size,
		"total":     h.engine.GetTotalCampaigns(),
	})
}

// GetCampaignMilestones 获取活动里程碑
func (h *CampaignHandler) GetCampaignMilestones(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	milestones, err := h.engine.GetCampaignMilestones(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取里程碑成功", gin.H{
		"milestones": ToMilestoneResponseList(milestones),
	})
}

// GetCampaignContributors 获取活动出资人列表
func (h *CampaignHandler) GetCampaignContributors(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	contributors, err := h.engine.GetCampaignContributors(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	addresses := make([]string, len(contributors))
	for i, addr := range contributors {
		addresses[i] = addr.Hex()
	}
	SuccessResponse(c, http.StatusOK, "获取出资人列表成功", gin.H{"contributors": addresses})
}

// GetContribution 获取某出资人在活动中的累计出资
func (h *CampaignHandler) GetContribution(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	backer, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	amount, err := h.engine.GetContribution(id, backer)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取出资金额成功", gin.H{"amount": amount.String()})
}

// Contribute 出资
func (h *CampaignHandler) Contribute(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	backer, ok := callerAddress(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的出资金额")
		return
	}

	newTotal, err := h.engine.Contribute(id, backer, amount)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "出资成功", gin.H{"new_total": newTotal.String()})
}

// Finalize 结算活动，任何人都可以触发
func (h *CampaignHandler) Finalize(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	status, err := h.engine.FinalizeCampaign(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已结算", gin.H{"status": status.String()})
}

// Cancel 创建者取消活动
func (h *CampaignHandler) Cancel(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	if err := h.engine.CancelCampaign(id, caller); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已取消", nil)
}

// Withdraw 创建者提款
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payout, err := h.engine.WithdrawFunds(id, req.MilestoneIndex, caller)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提款成功", gin.H{"net_payout": payout.String()})
}

// Refund 出资人退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	backer, ok := callerAddress(c)
	if !ok {
		return
	}

	amount, err := h.engine.ClaimRefund(id, backer)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{"amount": amount.String()})
}

// GetUserCreatedCampaigns 用户创建的活动
func (h *CampaignHandler) GetUserCreatedCampaigns(c *gin.Context) {
	creator, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	ids := h.engine.GetUserCreatedCampaigns(creator)
	SuccessResponse(c, http.StatusOK, "获取用户活动成功", gin.H{"campaign_ids": ids})
}

// GetUserContributions 用户的出资视图
func (h *CampaignHandler) GetUserContributions(c *gin.Context) {
	backer, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	contributions := h.engine.GetUserContributions(backer)
	SuccessResponse(c, http.StatusOK, "获取用户出资成功", gin.H{
		"contributions": ToUserContributionResponseList(contributions),
	})
}

// campaignID 解析路径中的活动ID
func campaignID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return 0, false
	}
	return id, true
}
