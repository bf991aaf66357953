package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// 读接口。返回的都是拷贝，读操作观察到的是某次完整变更前或后的状态。

// GetCampaign 活动详情
func (e *Engine) GetCampaign(id uint64) (*model.Campaign, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return nil, ErrCampaignNotFound
	}
	return campaign.Snapshot(), nil
}

// GetCampaignMilestones 活动的里程碑序列
func (e *Engine) GetCampaignMilestones(id uint64) ([]model.Milestone, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return nil, ErrCampaignNotFound
	}
	milestones := make([]model.Milestone, len(campaign.Milestones))
	copy(milestones, campaign.Milestones)
	return milestones, nil
}

// GetCampaignContributors 出资人列表，按首次出资顺序
func (e *Engine) GetCampaignContributors(id uint64) ([]common.Address, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return nil, ErrCampaignNotFound
	}
	contributors := make([]common.Address, len(campaign.Contributors))
	copy(contributors, campaign.Contributors)
	return contributors, nil
}

// GetContribution 某出资人在活动中的当前累计出资，已退款返回0
func (e *Engine) GetContribution(id uint64, backer common.Address) (*big.Int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	campaign, ok := e.store.get(id)
	if !ok {
		return nil, ErrCampaignNotFound
	}
	balance := campaign.Contributions[backer]
	if balance == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(balance), nil
}

// GetUserCreatedCampaigns 用户创建的活动ID
func (e *Engine) GetUserCreatedCampaigns(creator common.Address) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.createdBy(creator)
}

// GetUserContributions 用户在所有活动中的出资视图
func (e *Engine) GetUserContributions(backer common.Address) []model.UserContribution {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.store.backedBy(backer)
	contributions := make([]model.UserContribution, 0, len(ids))
	for _, id := range ids {
		campaign, ok := e.store.get(id)
		if !ok {
			continue
		}
		balance := campaign.Contributions[backer]
		amount := new(big.Int)
		if balance != nil {
			amount.Set(balance)
		}
		contributions = append(contributions, model.UserContribution{
			CampaignID: id,
			Amount:     amount,
		})
	}
	return contributions
}

// ListCampaigns 按ID升序分页返回活动快照
func (e *Engine) ListCampaigns(offset, limit int) []*model.Campaign {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := len(e.store.campaigns)
	if offset < 0 || offset >= total || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*model.Campaign, 0, end-offset)
	for _, campaign := range e.store.campaigns[offset:end] {
		out = append(out, campaign.Snapshot())
	}
	return out
}

// GetTotalCampaigns 平台累计创建的活动数
func (e *Engine) GetTotalCampaigns() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.count()
}

// GetPlatformStats 平台聚合统计
func (e *Engine) GetPlatformStats() model.PlatformStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return model.PlatformStats{
		TotalCampaigns:          e.store.count(),
		TotalRaisedAllTime:      new(big.Int).Set(e.totalRaisedAllTime),
		SuccessfulCampaignCount: e.successfulCampaignCount,
	}
}

// PlatformFeeBasisPoints 当前平台费率
func (e *Engine) PlatformFeeBasisPoints() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.feeBasisPoints
}

// Owner 平台所有者
func (e *Engine) Owner() common.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.owner
}
