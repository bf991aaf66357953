package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

// Treasury 对外转账原语。实现方可能失败，也可能在转账过程中
// 重入引擎，引擎在调用前已完成全部状态变更（checks-effects-interactions）。
type Treasury interface {
	Transfer(to common.Address, amount *big.Int) error
}

// NopTreasury 只记日志的转账实现，实际出账由外部签名交易层完成
type NopTreasury struct{}

// Transfer 记录转账意图
func (NopTreasury) Transfer(to common.Address, amount *big.Int) error {
	logger.Info("Transfer %s wei to %s", amount.String(), to.Hex())
	return nil
}
