package main

import (
	"github.com/blues/cfe/internal/config"
	"github.com/blues/cfe/internal/database"
	"github.com/blues/cfe/internal/engine"
	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/blues/cfe/internal/router"
	"github.com/blues/cfe/internal/task"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化事件总线并挂载落库处理器
	bus, err := event.NewBus(cfg.Engine.EventPoolSize)
	if err != nil {
		logger.Fatal("Failed to create event bus: %v", err)
	}
	bus.Register(event.NewRecorder(db))

	// 初始化托管引擎
	if !common.IsHexAddress(cfg.Engine.Owner) {
		logger.Fatal("Invalid platform owner address: %s", cfg.Engine.Owner)
	}
	eng, err := engine.New(engine.Config{
		Owner:          common.HexToAddress(cfg.Engine.Owner),
		FeeBasisPoints: cfg.Engine.FeeBasisPoints,
		Emitter:        bus,
	})
	if err != nil {
		logger.Fatal("Failed to initialize engine: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(eng, cfg)

	// 启动定时结算任务
	task.Start(eng, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
