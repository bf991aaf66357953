package engine

import (
	"math/big"
	"time"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// CreateCampaign 创建众筹活动，返回分配的活动ID。
// 里程碑计划在创建时一次性确定，空计划表示成功后整笔释放。
func (e *Engine) CreateCampaign(
	creator common.Address,
	title, description, metadataURI string,
	fundingGoal *big.Int,
	durationDays int,
	minContribution, maxContribution *big.Int,
	milestones []model.MilestonePlan,
) (uint64, error) {
	minContribution = normalizeAmount(minContribution)
	maxContribution = normalizeAmount(maxContribution)

	if err := validateCampaignParams(title, description, fundingGoal, durationDays, minContribution, maxContribution); err != nil {
		return 0, err
	}
	plan, err := buildMilestones(milestones)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	campaign := &model.Campaign{
		Creator:         creator,
		Title:           title,
		Description:     description,
		MetadataURI:     metadataURI,
		FundingGoal:     new(big.Int).Set(fundingGoal),
		TotalRaised:     new(big.Int),
		MinContribution: minContribution,
		MaxContribution: maxContribution,
		FundsWithdrawn:  new(big.Int),
		CreatedAt:       now,
		Deadline:        now.Add(time.Duration(durationDays) * 24 * time.Hour),
		Status:          model.CampaignStatusActive,
		Milestones:      plan,
		Contributions:   make(map[common.Address]*big.Int),
	}

	id := e.store.add(campaign)

	logger.Info("Campaign %d created by %s, goal %s wei, deadline %s",
		id, creator.Hex(), fundingGoal.String(), campaign.Deadline.Format(time.RFC3339))
	e.emitter.Emit(event.CampaignCreated{
		ID:          id,
		Creator:     creator,
		Title:       title,
		MetadataURI: metadataURI,
		FundingGoal: new(big.Int).Set(fundingGoal),
		Deadline:    campaign.Deadline.Unix(),
	})
	return id, nil
}

// validateCampaignParams 创建参数校验，任何一项不满足都拒绝且不写状态
func validateCampaignParams(title, description string, fundingGoal *big.Int, durationDays int, minContribution, maxContribution *big.Int) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(description) < MinDescriptionLength {
		return ErrDescriptionTooShort
	}
	if fundingGoal == nil || fundingGoal.Sign() <= 0 {
		return ErrInvalidFundingGoal
	}
	if durationDays < MinDurationDays || durationDays > MaxDurationDays {
		return ErrInvalidDuration
	}
	if minContribution.Sign() > 0 && maxContribution.Sign() > 0 &&
		minContribution.Cmp(maxContribution) > 0 {
		return ErrInvalidContributionBounds
	}
	return nil
}

// buildMilestones 校验并生成里程碑序列，百分比合计不得超过10000万分点
func buildMilestones(plans []model.MilestonePlan) ([]model.Milestone, error) {
	if len(plans) == 0 {
		return nil, nil
	}

	var totalBps uint64
	milestones := make([]model.Milestone, 0, len(plans))
	for _, p := range plans {
		if p.PercentageBasisPoints == 0 {
			return nil, ErrInvalidMilestonePlan
		}
		totalBps += p.PercentageBasisPoints
		if totalBps > TotalBasisPoints {
			return nil, ErrInvalidMilestonePlan
		}
		milestones = append(milestones, model.Milestone{
			Description:           p.Description,
			PercentageBasisPoints: p.PercentageBasisPoints,
		})
	}
	return milestones, nil
}

// normalizeAmount nil 金额一律按0处理
func normalizeAmount(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
