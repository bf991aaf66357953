package engine

import (
	"math/big"

	"github.com/blues/cfe/internal/model"
)

// releaseMilestone 标记里程碑已释放并返回费前应得金额。
// 只允许按索引升序释放，同一里程碑至多释放一次。
// 调用方必须持有写锁。
func releaseMilestone(campaign *model.Campaign, index int) (*big.Int, error) {
	if index < 0 || index >= len(campaign.Milestones) {
		return nil, ErrMilestoneIndexOutOfRange
	}
	if campaign.Milestones[index].Released {
		return nil, ErrMilestoneAlreadyReleased
	}
	for i := 0; i < index; i++ {
		if !campaign.Milestones[i].Released {
			return nil, ErrMilestoneSequenceViolation
		}
	}

	campaign.Milestones[index].Released = true

	entitlement := new(big.Int).Mul(
		campaign.TotalRaised,
		new(big.Int).SetUint64(campaign.Milestones[index].PercentageBasisPoints),
	)
	return entitlement.Div(entitlement, big.NewInt(TotalBasisPoints)), nil
}
