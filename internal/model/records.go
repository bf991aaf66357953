package model

import (
	"time"
)

// 审计记录模型。引擎内存状态是资金的唯一事实来源，
// 这里的表是事件落库后的追溯副本，金额统一存 wei 十进制字符串。

// CampaignRecordModel 活动记录
type CampaignRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId  uint64 `json:"campaign_id" gorm:"uniqueIndex;not null"`
	Creator     string `json:"creator" gorm:"not null;index"`
	Title       string `json:"title" gorm:"not null"`
	MetadataURI string `json:"metadata_uri"`
	FundingGoal string `json:"funding_goal" gorm:"not null"`
	Deadline    int64  `json:"deadline" gorm:"not null"` // unix 秒
	Status      string `json:"status" gorm:"default:'active'"`
}

// TableName 自定义表名
func (CampaignRecordModel) TableName() string {
	return "campaign_record"
}

// ContributeRecordModel 出资记录
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId uint64 `json:"campaign_id" gorm:"not null;index"`
	Address    string `json:"address" gorm:"not null;index"`
	Amount     string `json:"amount" gorm:"not null"`
	NewTotal   string `json:"new_total" gorm:"not null"` // 本次出资后的活动累计金额
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}

// RefundRecordModel 退款记录
type RefundRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId uint64 `json:"campaign_id" gorm:"not null;index"`
	Address    string `json:"address" gorm:"not null;index"`
	Amount     string `json:"amount" gorm:"not null"`
}

// TableName 自定义表名
func (RefundRecordModel) TableName() string {
	return "refund_record"
}

// SettlementRecordModel 结算记录，创建者每次提款写一条
type SettlementRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId     uint64 `json:"campaign_id" gorm:"not null;index"`
	MilestoneIndex int    `json:"milestone_index" gorm:"default:-1"` // -1 表示无里程碑的整笔提款
	Entitlement    string `json:"entitlement" gorm:"not null"`       // 费前应得金额
	PlatformFee    string `json:"platform_fee" gorm:"not null"`
	CreatorAmount  string `json:"creator_amount" gorm:"not null"`
}

// TableName 自定义表名
func (SettlementRecordModel) TableName() string {
	return "settlement_record"
}

// EventModel 引擎事件记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId uint64 `json:"campaign_id" gorm:"index"`
	EventType  string `json:"event_type" gorm:"not null;index"`
	Data       string `json:"data" gorm:"type:text"` // 事件负载 JSON
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
