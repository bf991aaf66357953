package event

import (
	"sync"

	"github.com/blues/cfe/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Processor 事件处理器
type Processor interface {
	// GetName 处理器名称
	GetName() string
	// Process 处理单个事件
	Process(e Event) error
}

// Bus 事件总线，把引擎事件异步分发给注册的处理器。
// 分发在 ants 协程池上执行，处理器失败只记日志，不影响引擎调用方。
type Bus struct {
	mu         sync.RWMutex
	processors []Processor
	pool       *ants.Pool
}

// NewBus 创建事件总线
func NewBus(poolSize int) (*Bus, error) {
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Bus{pool: pool}, nil
}

// Register 注册事件处理器
func (b *Bus) Register(p Processor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.processors = append(b.processors, p)
	logger.Info("Registered event processor: %s", p.GetName())
}

// Emit 实现 Emitter 接口
func (b *Bus) Emit(e Event) {
	b.mu.RLock()
	processors := make([]Processor, len(b.processors))
	copy(processors, b.processors)
	b.mu.RUnlock()

	for _, p := range processors {
		p := p
		err := b.pool.Submit(func() {
			if err := p.Process(e); err != nil {
				logger.Error("Processor %s failed to process %s event for campaign %d: %v",
					p.GetName(), e.Name(), e.CampaignID(), err)
			}
		})
		if err != nil {
			logger.Error("Failed to submit %s event to pool: %v", e.Name(), err)
		}
	}
}

// Stop 停止事件总线，等待在途任务结束
func (b *Bus) Stop() {
	b.pool.Release()
	logger.Info("Event bus stopped")
}
