package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CampaignStatus 活动状态
type CampaignStatus uint8

const (
	CampaignStatusActive     CampaignStatus = 0 // 进行中
	CampaignStatusSuccessful CampaignStatus = 1 // 成功
	CampaignStatusFailed     CampaignStatus = 2 // 失败
	CampaignStatusCancelled  CampaignStatus = 3 // 已取消
)

// String 状态名称
func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusActive:
		return "active"
	case CampaignStatusSuccessful:
		return "successful"
	case CampaignStatusFailed:
		return "failed"
	case CampaignStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal 是否为终态（终态之后不允许任何状态迁移）
func (s CampaignStatus) IsTerminal() bool {
	return s != CampaignStatusActive
}

// Milestone 里程碑，按创建时的顺序释放
type Milestone struct {
	Description           string `json:"description"`
	PercentageBasisPoints uint64 `json:"percentage_basis_points"` // 万分比
	Released              bool   `json:"released"`
}

// MilestonePlan 创建活动时提交的里程碑计划
type MilestonePlan struct {
	Description           string `json:"description"`
	PercentageBasisPoints uint64 `json:"percentage_basis_points"`
}

// Campaign 众筹活动，引擎内的资金承载记录
type Campaign struct {
	ID          uint64         `json:"id"`
	Creator     common.Address `json:"creator"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	MetadataURI string         `json:"metadata_uri"`

	// 资金信息，单位 wei
	FundingGoal     *big.Int `json:"funding_goal"`
	TotalRaised     *big.Int `json:"total_raised"`
	MinContribution *big.Int `json:"min_contribution"` // 0 表示不限制
	MaxContribution *big.Int `json:"max_contribution"` // 0 表示不限制
	FundsWithdrawn  *big.Int `json:"funds_withdrawn"`

	// 时间信息
	CreatedAt time.Time `json:"created_at"`
	Deadline  time.Time `json:"deadline"`

	Status CampaignStatus `json:"status"`

	Milestones []Milestone `json:"milestones"`

	// 退款时余额清零而不删除，防止重复退款
	Contributions map[common.Address]*big.Int `json:"-"`
	// 去重后的出资人，按首次出资顺序追加
	Contributors []common.Address `json:"contributors"`
}

// Snapshot 返回深拷贝，调用方拿不到引擎内部状态的可变引用
func (c *Campaign) Snapshot() *Campaign {
	cp := *c
	cp.FundingGoal = new(big.Int).Set(c.FundingGoal)
	cp.TotalRaised = new(big.Int).Set(c.TotalRaised)
	cp.MinContribution = new(big.Int).Set(c.MinContribution)
	cp.MaxContribution = new(big.Int).Set(c.MaxContribution)
	cp.FundsWithdrawn = new(big.Int).Set(c.FundsWithdrawn)
	cp.Milestones = make([]Milestone, len(c.Milestones))
	copy(cp.Milestones, c.Milestones)
	cp.Contributors = make([]common.Address, len(c.Contributors))
	copy(cp.Contributors, c.Contributors)
	cp.Contributions = make(map[common.Address]*big.Int, len(c.Contributions))
	for addr, amount := range c.Contributions {
		cp.Contributions[addr] = new(big.Int).Set(amount)
	}
	return &cp
}

// UserContribution 用户维度的出资视图
type UserContribution struct {
	CampaignID uint64   `json:"campaign_id"`
	Amount     *big.Int `json:"amount"`
}

// PlatformStats 平台统计信息
type PlatformStats struct {
	TotalCampaigns          uint64   `json:"total_campaigns"`
	TotalRaisedAllTime      *big.Int `json:"total_raised_all_time"`
	SuccessfulCampaignCount uint64   `json:"successful_campaign_count"`
}
