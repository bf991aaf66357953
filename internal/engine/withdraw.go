package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// WithdrawFunds 创建者提款，返回实际支付给创建者的净额。
// 无里程碑的活动整笔提取一次；有里程碑的按计划逐个释放，
// milestoneIndex 指定本次释放的里程碑。
// 转账失败时本次提款的全部状态变更回滚。
func (e *Engine) WithdrawFunds(id uint64, milestoneIndex int, caller common.Address) (*big.Int, error) {
	e.mu.Lock()

	campaign, ok := e.store.get(id)
	if !ok {
		e.mu.Unlock()
		return nil, ErrCampaignNotFound
	}
	if caller != campaign.Creator {
		e.mu.Unlock()
		return nil, ErrNotCreator
	}
	if campaign.Status != model.CampaignStatusSuccessful {
		e.mu.Unlock()
		return nil, ErrCampaignNotSuccessful
	}

	var entitlement *big.Int
	released := -1
	if len(campaign.Milestones) == 0 {
		if campaign.FundsWithdrawn.Sign() > 0 {
			e.mu.Unlock()
			return nil, ErrAlreadyWithdrawn
		}
		entitlement = new(big.Int).Set(campaign.TotalRaised)
	} else {
		var err error
		entitlement, err = releaseMilestone(campaign, milestoneIndex)
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}
		released = milestoneIndex
	}

	fee := e.platformFee(entitlement)
	netPayout := new(big.Int).Sub(entitlement, fee)

	// 先落账再转账，转账期间的重入调用看到的是已更新状态
	campaign.FundsWithdrawn.Add(campaign.FundsWithdrawn, entitlement)
	e.feesCollected.Add(e.feesCollected, fee)
	e.mu.Unlock()

	if err := e.treasury.Transfer(campaign.Creator, netPayout); err != nil {
		e.mu.Lock()
		campaign.FundsWithdrawn.Sub(campaign.FundsWithdrawn, entitlement)
		e.feesCollected.Sub(e.feesCollected, fee)
		if released >= 0 {
			campaign.Milestones[released].Released = false
		}
		e.mu.Unlock()
		logger.Error("Withdrawal transfer for campaign %d rolled back: %v", id, err)
		return nil, transferFailed(err)
	}

	logger.Info("Campaign %d withdrawal: entitlement %s, fee %s, payout %s wei",
		id, entitlement.String(), fee.String(), netPayout.String())
	if released >= 0 {
		e.emitter.Emit(event.MilestoneReleased{
			ID:          id,
			Index:       released,
			Entitlement: new(big.Int).Set(entitlement),
		})
	}
	e.emitter.Emit(event.FundsWithdrawn{
		ID:             id,
		Creator:        campaign.Creator,
		MilestoneIndex: released,
		Entitlement:    new(big.Int).Set(entitlement),
		PlatformFee:    fee,
		NetPayout:      new(big.Int).Set(netPayout),
	})
	return netPayout, nil
}

// FeesCollected 平台累计抽取的手续费
func (e *Engine) FeesCollected() *big.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return new(big.Int).Set(e.feesCollected)
}
