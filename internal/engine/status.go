package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// FinalizeCampaign 结算活动状态，任何人都可以触发。
// 达标的活动随时可终结为成功；未达标的要等截止时间过后终结为失败。
func (e *Engine) FinalizeCampaign(id uint64) (model.CampaignStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return 0, ErrCampaignNotFound
	}
	if campaign.Status.IsTerminal() {
		return 0, ErrAlreadyFinalized
	}

	if campaign.TotalRaised.Cmp(campaign.FundingGoal) >= 0 {
		e.markSuccessful(campaign)
		return campaign.Status, nil
	}

	if e.clock.Now().Before(campaign.Deadline) {
		return 0, ErrFinalizationNotDue
	}

	campaign.Status = model.CampaignStatusFailed
	logger.Info("Campaign %d failed, raised %s of %s wei",
		id, campaign.TotalRaised.String(), campaign.FundingGoal.String())
	e.emitter.Emit(event.CampaignFinalized{
		ID:          id,
		Status:      model.CampaignStatusFailed,
		TotalRaised: new(big.Int).Set(campaign.TotalRaised),
	})
	return campaign.Status, nil
}

// CancelCampaign 创建者取消进行中的活动。
// 已有出资的活动也允许取消，取消后出资人走退款通道领回资金。
func (e *Engine) CancelCampaign(id uint64, caller common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return ErrCampaignNotFound
	}
	if caller != campaign.Creator {
		return ErrNotCreator
	}
	if campaign.Status != model.CampaignStatusActive {
		return ErrCannotCancelAfterResolution
	}

	campaign.Status = model.CampaignStatusCancelled
	logger.Info("Campaign %d cancelled by creator, %s wei pending refund",
		id, campaign.TotalRaised.String())
	e.emitter.Emit(event.CampaignFinalized{
		ID:          id,
		Status:      model.CampaignStatusCancelled,
		TotalRaised: new(big.Int).Set(campaign.TotalRaised),
	})
	return nil
}

// DueCampaigns 截止时间已过但仍处于进行中的活动，供定时结算任务扫描
func (e *Engine) DueCampaigns() []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.clock.Now()
	var due []uint64
	for _, campaign := range e.store.campaigns {
		if campaign.Status == model.CampaignStatusActive && !now.Before(campaign.Deadline) {
			due = append(due, campaign.ID)
		}
	}
	return due
}

// FinalizationDue 读侧视图：活动已过截止时间但尚未结算。
// 存储里的状态仍是 Active，只有 FinalizeCampaign 会真正迁移状态。
func (e *Engine) FinalizationDue(id uint64) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return false, ErrCampaignNotFound
	}
	return campaign.Status == model.CampaignStatusActive &&
		!e.clock.Now().Before(campaign.Deadline), nil
}
