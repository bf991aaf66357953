package event

import (
	"encoding/json"
	"fmt"

	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/model"
	"gorm.io/gorm"
)

// Recorder 把引擎事件落库成审计记录
type Recorder struct {
	db *gorm.DB
}

// NewRecorder 创建事件落库处理器
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// GetName 处理器名称
func (r *Recorder) GetName() string {
	return "event_recorder"
}

// Process 处理单个事件：先写通用事件表，再按类型写业务记录表
func (r *Recorder) Process(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Name(), err)
	}

	record := model.EventModel{
		CampaignId: e.CampaignID(),
		EventType:  e.Name(),
		Data:       string(data),
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("persist %s event: %w", e.Name(), err)
	}

	switch ev := e.(type) {
	case CampaignCreated:
		return r.recordCampaignCreated(ev)
	case ContributionMade:
		return r.recordContribution(ev)
	case CampaignFinalized:
		return r.recordStatusChange(ev)
	case FundsWithdrawn:
		return r.recordSettlement(ev)
	case RefundClaimed:
		return r.recordRefund(ev)
	default:
		// MilestoneReleased、PlatformFeeUpdated 只保留通用事件行
		return nil
	}
}

func (r *Recorder) recordCampaignCreated(ev CampaignCreated) error {
	record := model.CampaignRecordModel{
		CampaignId:  ev.ID,
		Creator:     ev.Creator.Hex(),
		Title:       ev.Title,
		MetadataURI: ev.MetadataURI,
		FundingGoal: ev.FundingGoal.String(),
		Deadline:    ev.Deadline,
		Status:      model.CampaignStatusActive.String(),
	}
	return r.db.Create(&record).Error
}

func (r *Recorder) recordContribution(ev ContributionMade) error {
	record := model.ContributeRecordModel{
		CampaignId: ev.ID,
		Address:    ev.Backer.Hex(),
		Amount:     ev.Amount.String(),
		NewTotal:   ev.NewTotal.String(),
	}
	return r.db.Create(&record).Error
}

func (r *Recorder) recordStatusChange(ev CampaignFinalized) error {
	result := r.db.Model(&model.CampaignRecordModel{}).
		Where("campaign_id = ?", ev.ID).
		Update("status", ev.Status.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		logger.Warn("Status change for unknown campaign record %d", ev.ID)
	}
	return nil
}

func (r *Recorder) recordSettlement(ev FundsWithdrawn) error {
	record := model.SettlementRecordModel{
		CampaignId:     ev.ID,
		MilestoneIndex: ev.MilestoneIndex,
		Entitlement:    ev.Entitlement.String(),
		PlatformFee:    ev.PlatformFee.String(),
		CreatorAmount:  ev.NetPayout.String(),
	}
	return r.db.Create(&record).Error
}

func (r *Recorder) recordRefund(ev RefundClaimed) error {
	record := model.RefundRecordModel{
		CampaignId: ev.ID,
		Address:    ev.Backer.Hex(),
		Amount:     ev.Amount.String(),
	}
	return r.db.Create(&record).Error
}
