package engine

import (
	"math/big"
	"sync"
	"time"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// MaxTitleLength 活动标题最大长度
	MaxTitleLength = 100
	// MinDescriptionLength 活动描述最小长度
	MinDescriptionLength = 20
	// MinDurationDays 最短众筹周期
	MinDurationDays = 1
	// MaxDurationDays 最长众筹周期
	MaxDurationDays = 365
	// MaxFeeBasisPoints 平台费率上限，万分之500即5%
	MaxFeeBasisPoints = 500
	// TotalBasisPoints 万分比基数
	TotalBasisPoints = 10000
)

// Clock 时间源，测试时可注入假时钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 真实时钟
func SystemClock() Clock { return systemClock{} }

// Config 引擎配置
type Config struct {
	Owner          common.Address // 平台所有者，可调整费率
	FeeBasisPoints uint64         // 初始平台费率，万分比
	Treasury       Treasury       // 对外转账原语
	Clock          Clock          // 缺省使用系统时钟
	Emitter        event.Emitter  // 缺省丢弃事件
}

// Engine 活动托管引擎，持有全部资金状态。
// 所有写操作在同一把锁下串行执行，要么完整落地要么整体拒绝。
type Engine struct {
	mu    sync.RWMutex
	store *campaignStore

	clock    Clock
	treasury Treasury
	emitter  event.Emitter

	owner          common.Address
	feeBasisPoints uint64

	// 平台聚合计数
	feesCollected           *big.Int
	totalRaisedAllTime      *big.Int
	successfulCampaignCount uint64
}

// New 创建引擎
func New(cfg Config) (*Engine, error) {
	if cfg.FeeBasisPoints > MaxFeeBasisPoints {
		return nil, ErrFeeExceedsCap
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.Emitter == nil {
		cfg.Emitter = event.NopEmitter{}
	}
	if cfg.Treasury == nil {
		cfg.Treasury = NopTreasury{}
	}

	return &Engine{
		store:              newCampaignStore(),
		clock:              cfg.Clock,
		treasury:           cfg.Treasury,
		emitter:            cfg.Emitter,
		owner:              cfg.Owner,
		feeBasisPoints:     cfg.FeeBasisPoints,
		feesCollected:      new(big.Int),
		totalRaisedAllTime: new(big.Int),
	}, nil
}

// UpdatePlatformFee 调整平台费率，仅平台所有者可调用
func (e *Engine) UpdatePlatformFee(caller common.Address, newFeeBasisPoints uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return ErrNotOwner
	}
	if newFeeBasisPoints > MaxFeeBasisPoints {
		return ErrFeeExceedsCap
	}

	old := e.feeBasisPoints
	e.feeBasisPoints = newFeeBasisPoints

	logger.Info("Platform fee updated from %d to %d bps", old, newFeeBasisPoints)
	e.emitter.Emit(event.PlatformFeeUpdated{
		OldFeeBasisPoints: old,
		NewFeeBasisPoints: newFeeBasisPoints,
	})
	return nil
}

// platformFee 计算费前金额对应的平台费，整数截断
func (e *Engine) platformFee(entitlement *big.Int) *big.Int {
	fee := new(big.Int).Mul(entitlement, new(big.Int).SetUint64(e.feeBasisPoints))
	return fee.Div(fee, big.NewInt(TotalBasisPoints))
}
