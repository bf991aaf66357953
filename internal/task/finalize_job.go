package task

import (
	"errors"
	"time"

	"github.com/blues/cfe/internal/config"
	"github.com/blues/cfe/internal/engine"
	"github.com/blues/cfe/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// FinalizeJob 定时结算任务。结算是无权限操作，任何人都能触发，
// 这里代替外部调用方定期把过期活动推入终态。
type FinalizeJob struct {
	engine *engine.Engine
	config *config.Config
}

// NewFinalizeJob 创建定时结算任务
func NewFinalizeJob(eng *engine.Engine, cfg *config.Config) *FinalizeJob {
	return &FinalizeJob{
		engine: eng,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *FinalizeJob) GetName() string {
	return "campaign_finalizer"
}

// GetSchedule 获取调度配置
func (j *FinalizeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *FinalizeJob) Execute() {
	due := j.engine.DueCampaigns()
	if len(due) == 0 {
		return
	}

	logger.Info("Finalizing %d due campaigns", len(due))

	finalized := 0
	for _, id := range due {
		status, err := j.engine.FinalizeCampaign(id)
		if err != nil {
			// 扫描和结算之间别的调用方可能已经结算过了
			if errors.Is(err, engine.ErrAlreadyFinalized) {
				continue
			}
			logger.Error("Failed to finalize campaign %d: %v", id, err)
			continue
		}
		logger.Info("Campaign %d finalized as %s", id, status.String())
		finalized++
	}

	logger.Info("Finalize task completed, %d campaigns finalized", finalized)
}
