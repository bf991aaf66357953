package event

import (
	"math/big"

	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// Event 引擎产生的事件，外部观察者凭事件即可重建账本状态
type Event interface {
	// Name 事件类型名
	Name() string
	// CampaignID 关联的活动ID，平台级事件返回0
	CampaignID() uint64
}

// CampaignCreated 活动创建
type CampaignCreated struct {
	ID          uint64         `json:"id"`
	Creator     common.Address `json:"creator"`
	Title       string         `json:"title"`
	MetadataURI string         `json:"metadata_uri"`
	FundingGoal *big.Int       `json:"funding_goal"`
	Deadline    int64          `json:"deadline"` // unix 秒
}

func (e CampaignCreated) Name() string       { return "CampaignCreated" }
func (e CampaignCreated) CampaignID() uint64 { return e.ID }

// ContributionMade 出资入账
type ContributionMade struct {
	ID       uint64         `json:"id"`
	Backer   common.Address `json:"backer"`
	Amount   *big.Int       `json:"amount"`
	NewTotal *big.Int       `json:"new_total"`
}

func (e ContributionMade) Name() string       { return "ContributionMade" }
func (e ContributionMade) CampaignID() uint64 { return e.ID }

// CampaignFinalized 活动状态迁移到终态（成功、失败或取消）
type CampaignFinalized struct {
	ID          uint64               `json:"id"`
	Status      model.CampaignStatus `json:"status"`
	TotalRaised *big.Int             `json:"total_raised"`
}

func (e CampaignFinalized) Name() string       { return "CampaignFinalized" }
func (e CampaignFinalized) CampaignID() uint64 { return e.ID }

// MilestoneReleased 里程碑释放
type MilestoneReleased struct {
	ID          uint64   `json:"id"`
	Index       int      `json:"index"`
	Entitlement *big.Int `json:"entitlement"`
}

func (e MilestoneReleased) Name() string       { return "MilestoneReleased" }
func (e MilestoneReleased) CampaignID() uint64 { return e.ID }

// FundsWithdrawn 创建者提款
type FundsWithdrawn struct {
	ID             uint64         `json:"id"`
	Creator        common.Address `json:"creator"`
	MilestoneIndex int            `json:"milestone_index"` // -1 表示无里程碑的整笔提款
	Entitlement    *big.Int       `json:"entitlement"`
	PlatformFee    *big.Int       `json:"platform_fee"`
	NetPayout      *big.Int       `json:"net_payout"`
}

func (e FundsWithdrawn) Name() string       { return "FundsWithdrawn" }
func (e FundsWithdrawn) CampaignID() uint64 { return e.ID }

// RefundClaimed 出资人退款
type RefundClaimed struct {
	ID     uint64         `json:"id"`
	Backer common.Address `json:"backer"`
	Amount *big.Int       `json:"amount"`
}

func (e RefundClaimed) Name() string       { return "RefundClaimed" }
func (e RefundClaimed) CampaignID() uint64 { return e.ID }

// PlatformFeeUpdated 平台费率调整
type PlatformFeeUpdated struct {
	OldFeeBasisPoints uint64 `json:"old_fee_basis_points"`
	NewFeeBasisPoints uint64 `json:"new_fee_basis_points"`
}

func (e PlatformFeeUpdated) Name() string       { return "PlatformFeeUpdated" }
func (e PlatformFeeUpdated) CampaignID() uint64 { return 0 }

// Emitter 事件出口，引擎在每次状态变更落地后调用
type Emitter interface {
	Emit(e Event)
}

// NopEmitter 丢弃所有事件
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}
