package handler

import (
	"math/big"
	"time"

	"github.com/blues/cfe/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

// 请求模型，金额一律为 wei 十进制字符串

// MilestoneRequest 里程碑计划
type MilestoneRequest struct {
	Description           string `json:"description"`
	PercentageBasisPoints uint64 `json:"percentage_basis_points" binding:"required"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title           string             `json:"title" binding:"required"`
	Description     string             `json:"description" binding:"required"`
	MetadataURI     string             `json:"metadata_uri"`
	FundingGoal     string             `json:"funding_goal" binding:"required"`
	DurationDays    int                `json:"duration_days" binding:"required"`
	MinContribution string             `json:"min_contribution"`
	MaxContribution string             `json:"max_contribution"`
	Milestones      []MilestoneRequest `json:"milestones"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WithdrawRequest 提款请求
type WithdrawRequest struct {
	MilestoneIndex int `json:"milestone_index"`
}

// UpdateFeeRequest 调整平台费率请求
type UpdateFeeRequest struct {
	FeeBasisPoints uint64 `json:"fee_basis_points"`
}

// 响应模型

// MilestoneResponse 里程碑响应
type MilestoneResponse struct {
	Index                 int    `json:"index"`
	Description           string `json:"description"`
	PercentageBasisPoints uint64 `json:"percentageBasisPoints"`
	Released              bool   `json:"released"`
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID              uint64              `json:"id"`
	Creator         string              `json:"creator"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	MetadataURI     string              `json:"metadataUri"`
	FundingGoal     string              `json:"fundingGoal"`
	TotalRaised     string              `json:"totalRaised"`
	MinContribution string              `json:"minContribution"`
	MaxContribution string              `json:"maxContribution"`
	FundsWithdrawn  string              `json:"fundsWithdrawn"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	Deadline        time.Time           `json:"deadline"`
	Milestones      []MilestoneResponse `json:"milestones"`
	Contributors    int                 `json:"contributors"`
}

// PlatformStatsResponse 平台统计响应
type PlatformStatsResponse struct {
	TotalCampaigns          uint64 `json:"totalCampaigns"`
	TotalRaisedAllTime      string `json:"totalRaisedAllTime"`
	SuccessfulCampaignCount uint64 `json:"successfulCampaignCount"`
}

// UserContributionResponse 用户出资响应
type UserContributionResponse struct {
	CampaignID uint64 `json:"campaignId"`
	Amount     string `json:"amount"`
}

// 转换函数

// ToCampaignResponse 将引擎快照转换为响应模型
func ToCampaignResponse(campaign *model.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:              campaign.ID,
		Creator:         campaign.Creator.Hex(),
		Title:           campaign.Title,
		Description:     campaign.Description,
		MetadataURI:     campaign.MetadataURI,
		FundingGoal:     campaign.FundingGoal.String(),
		TotalRaised:     campaign.TotalRaised.String(),
		MinContribution: campaign.MinContribution.String(),
		MaxContribution: campaign.MaxContribution.String(),
		FundsWithdrawn:  campaign.FundsWithdrawn.String(),
		Status:          campaign.Status.String(),
		CreatedAt:       campaign.CreatedAt,
		Deadline:        campaign.Deadline,
		Milestones:      ToMilestoneResponseList(campaign.Milestones),
		Contributors:    len(campaign.Contributors),
	}
}

// ToMilestoneResponseList 将里程碑序列转换为响应模型列表
func ToMilestoneResponseList(milestones []model.Milestone) []MilestoneResponse {
	result := make([]MilestoneResponse, len(milestones))
	for i, m := range milestones {
		result[i] = MilestoneResponse{
			Index:                 i,
			Description:           m.Description,
			PercentageBasisPoints: m.PercentageBasisPoints,
			Released:              m.Released,
		}
	}
	return result
}

// ToUserContributionResponseList 将用户出资视图转换为响应模型列表
func ToUserContributionResponseList(contributions []model.UserContribution) []UserContributionResponse {
	result := make([]UserContributionResponse, len(contributions))
	for i, uc := range contributions {
		result[i] = UserContributionResponse{
			CampaignID: uc.CampaignID,
			Amount:     uc.Amount.String(),
		}
	}
	return result
}

// ToMilestonePlans 将请求中的里程碑计划转换为引擎输入
func ToMilestonePlans(reqs []MilestoneRequest) []model.MilestonePlan {
	if len(reqs) == 0 {
		return nil
	}
	plans := make([]model.MilestonePlan, len(reqs))
	for i, r := range reqs {
		plans[i] = model.MilestonePlan{
			Description:           r.Description,
			PercentageBasisPoints: r.PercentageBasisPoints,
		}
	}
	return plans
}

// parseAmount 解析 wei 十进制字符串，空串按0处理
func parseAmount(s string) (*big.Int, bool) {
	if s == "" {
		return new(big.Int), true
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}
