package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// ClaimRefund 活动失败或取消后出资人领回全部出资。
// 账本先清零再对外转账，转账期间的重入调用查不到可退余额；
// 转账失败则恢复账目，整个操作等于没有发生。
func (e *Engine) ClaimRefund(id uint64, backer common.Address) (*big.Int, error) {
	e.mu.Lock()

	campaign, ok := e.store.get(id)
	if !ok {
		e.mu.Unlock()
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != model.CampaignStatusFailed && campaign.Status != model.CampaignStatusCancelled {
		e.mu.Unlock()
		return nil, ErrRefundsNotAvailable
	}
	balance := campaign.Contributions[backer]
	if balance == nil || balance.Sign() == 0 {
		e.mu.Unlock()
		return nil, ErrNoContributionToRefund
	}

	// 清零而不删除，条目保留防止重复退款
	amount := new(big.Int).Set(balance)
	campaign.Contributions[backer] = new(big.Int)
	campaign.TotalRaised.Sub(campaign.TotalRaised, amount)
	e.mu.Unlock()

	if err := e.treasury.Transfer(backer, amount); err != nil {
		e.mu.Lock()
		campaign.Contributions[backer] = amount
		campaign.TotalRaised.Add(campaign.TotalRaised, amount)
		e.mu.Unlock()
		logger.Error("Refund transfer for campaign %d rolled back: %v", id, err)
		return nil, transferFailed(err)
	}

	logger.Info("Campaign %d refunded %s wei to %s", id, amount.String(), backer.Hex())
	e.emitter.Emit(event.RefundClaimed{
		ID:     id,
		Backer: backer,
		Amount: new(big.Int).Set(amount),
	})
	return new(big.Int).Set(amount), nil
}
