package task

import (
	"github.com/blues/cfe/internal/config"
	"github.com/blues/cfe/internal/engine"
	"github.com/blues/cfe/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	engine    *engine.Engine
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(eng *engine.Engine, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		engine:    eng,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(eng *engine.Engine, cfg *config.Config) *Manager {
	manager := NewManager(eng, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册活动结算任务
	m.RegisterFinalizeJob()
}

// RegisterFinalizeJob 注册活动结算任务
func (m *Manager) RegisterFinalizeJob() {
	job := NewFinalizeJob(m.engine, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
