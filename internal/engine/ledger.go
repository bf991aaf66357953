package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// Contribute 记录一笔出资，返回活动的最新累计金额。
// 累计金额达到目标时活动在同一次调用内直接转为成功，不等截止时间。
func (e *Engine) Contribute(id uint64, backer common.Address, amount *big.Int) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != model.CampaignStatusActive || !e.clock.Now().Before(campaign.Deadline) {
		return nil, ErrCampaignNotActive
	}
	if backer == campaign.Creator {
		return nil, ErrCreatorCannotContribute
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidContribution
	}
	if campaign.MinContribution.Sign() > 0 && amount.Cmp(campaign.MinContribution) < 0 {
		return nil, ErrBelowMinimum
	}

	existing := campaign.Contributions[backer]
	cumulative := new(big.Int).Set(amount)
	if existing != nil {
		cumulative.Add(cumulative, existing)
	}
	if campaign.MaxContribution.Sign() > 0 && cumulative.Cmp(campaign.MaxContribution) > 0 {
		return nil, ErrAboveMaximum
	}

	// 入账：个人累计与活动累计原子更新
	if existing == nil {
		campaign.Contributors = append(campaign.Contributors, backer)
		e.store.indexBacker(backer, id)
	}
	campaign.Contributions[backer] = cumulative
	campaign.TotalRaised.Add(campaign.TotalRaised, amount)
	e.totalRaisedAllTime.Add(e.totalRaisedAllTime, amount)

	newTotal := new(big.Int).Set(campaign.TotalRaised)
	e.emitter.Emit(event.ContributionMade{
		ID:       id,
		Backer:   backer,
		Amount:   new(big.Int).Set(amount),
		NewTotal: newTotal,
	})

	// 达标即成功
	if campaign.TotalRaised.Cmp(campaign.FundingGoal) >= 0 {
		e.markSuccessful(campaign)
	}

	return newTotal, nil
}

// markSuccessful 活动转为成功态，调用方必须持有写锁
func (e *Engine) markSuccessful(campaign *model.Campaign) {
	campaign.Status = model.CampaignStatusSuccessful
	e.successfulCampaignCount++

	logger.Info("Campaign %d reached goal, raised %s wei", campaign.ID, campaign.TotalRaised.String())
	e.emitter.Emit(event.CampaignFinalized{
		ID:          campaign.ID,
		Status:      model.CampaignStatusSuccessful,
		TotalRaised: new(big.Int).Set(campaign.TotalRaised),
	})
}
