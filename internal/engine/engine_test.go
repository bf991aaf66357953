package engine

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/blues/cfe/internal/event"
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerAddr   = common.HexToAddress("0xA0000000000000000000000000000000000000A0")
	creatorAddr = common.HexToAddress("0xC1000000000000000000000000000000000000C1")
	backer1     = common.HexToAddress("0xB1000000000000000000000000000000000000B1")
	backer2     = common.HexToAddress("0xB2000000000000000000000000000000000000B2")
)

// ether n个ETH对应的wei
func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

// milliEther n个0.001 ETH对应的wei
func milliEther(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether/1000))
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type transferCall struct {
	to     common.Address
	amount *big.Int
}

// fakeTreasury 记录所有转账，可按需注入失败
type fakeTreasury struct {
	mu        sync.Mutex
	transfers []transferCall
	failNext  error
}

func (t *fakeTreasury) Transfer(to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failNext != nil {
		err := t.failNext
		t.failNext = nil
		return err
	}
	t.transfers = append(t.transfers, transferCall{to: to, amount: new(big.Int).Set(amount)})
	return nil
}

func (t *fakeTreasury) last() transferCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transfers[len(t.transfers)-1]
}

func (t *fakeTreasury) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.transfers)
}

// captureEmitter 同步收集事件
type captureEmitter struct {
	mu     sync.Mutex
	events []event.Event
}

func (e *captureEmitter) Emit(ev event.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *captureEmitter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, len(e.events))
	for i, ev := range e.events {
		names[i] = ev.Name()
	}
	return names
}

type testEnv struct {
	engine   *Engine
	clock    *fakeClock
	treasury *fakeTreasury
	emitter  *captureEmitter
}

func newTestEnv(t *testing.T, feeBasisPoints uint64) *testEnv {
	t.Helper()
	clock := newFakeClock()
	treasury := &fakeTreasury{}
	emitter := &captureEmitter{}

	eng, err := New(Config{
		Owner:          ownerAddr,
		FeeBasisPoints: feeBasisPoints,
		Treasury:       treasury,
		Clock:          clock,
		Emitter:        emitter,
	})
	require.NoError(t, err)

	return &testEnv{engine: eng, clock: clock, treasury: treasury, emitter: emitter}
}

const testDescription = "A campaign description that is long enough to pass validation"

// createCampaign 用默认参数创建活动：目标10 ETH，30天，无出资上下限
func (env *testEnv) createCampaign(t *testing.T, opts ...func(*campaignParams)) uint64 {
	t.Helper()
	p := campaignParams{
		title:        "Test Campaign",
		description:  testDescription,
		metadataURI:  "ipfs://test",
		goal:         ether(10),
		durationDays: 30,
		min:          nil,
		max:          nil,
	}
	for _, opt := range opts {
		opt(&p)
	}
	id, err := env.engine.CreateCampaign(
		creatorAddr, p.title, p.description, p.metadataURI,
		p.goal, p.durationDays, p.min, p.max, p.milestones,
	)
	require.NoError(t, err)
	return id
}

type campaignParams struct {
	title        string
	description  string
	metadataURI  string
	goal         *big.Int
	durationDays int
	min          *big.Int
	max          *big.Int
	milestones   []model.MilestonePlan
}

func withMin(min *big.Int) func(*campaignParams) {
	return func(p *campaignParams) { p.min = min }
}

func withMax(max *big.Int) func(*campaignParams) {
	return func(p *campaignParams) { p.max = max }
}

func withMilestones(plans ...model.MilestonePlan) func(*campaignParams) {
	return func(p *campaignParams) { p.milestones = plans }
}

// requireConservation 校验 totalRaised == Σ contributions
func requireConservation(t *testing.T, env *testEnv, id uint64) {
	t.Helper()
	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)

	sum := new(big.Int)
	for _, amount := range campaign.Contributions {
		sum.Add(sum, amount)
	}
	require.Zero(t, campaign.TotalRaised.Cmp(sum),
		"totalRaised %s != sum of contributions %s", campaign.TotalRaised, sum)
}

func TestCreateCampaign(t *testing.T) {
	env := newTestEnv(t, 250)

	id := env.createCampaign(t, withMin(milliEther(100)))
	assert.Equal(t, uint64(0), id)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, "Test Campaign", campaign.Title)
	assert.Equal(t, creatorAddr, campaign.Creator)
	assert.Zero(t, campaign.FundingGoal.Cmp(ether(10)))
	assert.Equal(t, model.CampaignStatusActive, campaign.Status)
	assert.Equal(t, env.clock.Now().Add(30*24*time.Hour), campaign.Deadline)
	assert.Zero(t, campaign.TotalRaised.Sign())
	assert.Empty(t, campaign.Milestones)

	// 顺序分配ID
	id2 := env.createCampaign(t)
	assert.Equal(t, uint64(1), id2)
	assert.Equal(t, uint64(2), env.engine.GetTotalCampaigns())

	assert.Equal(t, []string{"CampaignCreated", "CampaignCreated"}, env.emitter.names())
}

func TestCreateCampaignValidation(t *testing.T) {
	env := newTestEnv(t, 250)

	longTitle := make([]byte, MaxTitleLength+1)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	tests := []struct {
		name    string
		mutate  func(*campaignParams)
		wantErr error
	}{
		{"empty title", func(p *campaignParams) { p.title = "" }, ErrEmptyTitle},
		{"title too long", func(p *campaignParams) { p.title = string(longTitle) }, ErrTitleTooLong},
		{"description too short", func(p *campaignParams) { p.description = "short" }, ErrDescriptionTooShort},
		{"zero goal", func(p *campaignParams) { p.goal = new(big.Int) }, ErrInvalidFundingGoal},
		{"nil goal", func(p *campaignParams) { p.goal = nil }, ErrInvalidFundingGoal},
		{"zero duration", func(p *campaignParams) { p.durationDays = 0 }, ErrInvalidDuration},
		{"duration too long", func(p *campaignParams) { p.durationDays = 366 }, ErrInvalidDuration},
		{"min above max", func(p *campaignParams) {
			p.min = ether(2)
			p.max = ether(1)
		}, ErrInvalidContributionBounds},
		{"milestones above 100%", func(p *campaignParams) {
			p.milestones = []model.MilestonePlan{
				{Description: "a", PercentageBasisPoints: 6000},
				{Description: "b", PercentageBasisPoints: 5000},
			}
		}, ErrInvalidMilestonePlan},
		{"zero bps milestone", func(p *campaignParams) {
			p.milestones = []model.MilestonePlan{{Description: "a", PercentageBasisPoints: 0}}
		}, ErrInvalidMilestonePlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := campaignParams{
				title:        "Test Campaign",
				description:  testDescription,
				goal:         ether(10),
				durationDays: 30,
			}
			tt.mutate(&p)
			_, err := env.engine.CreateCampaign(
				creatorAddr, p.title, p.description, p.metadataURI,
				p.goal, p.durationDays, p.min, p.max, p.milestones,
			)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 全部被拒，无状态写入
	assert.Equal(t, uint64(0), env.engine.GetTotalCampaigns())
}

func TestContribute(t *testing.T) {
	// 场景A：目标10 ETH，30天，最小出资0.1 ETH，出资1 ETH
	env := newTestEnv(t, 250)
	id := env.createCampaign(t, withMin(milliEther(100)))

	newTotal, err := env.engine.Contribute(id, backer1, ether(1))
	require.NoError(t, err)
	assert.Zero(t, newTotal.Cmp(ether(1)))

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.TotalRaised.Cmp(ether(1)))
	assert.Equal(t, model.CampaignStatusActive, campaign.Status)
	assert.Equal(t, []common.Address{backer1}, campaign.Contributors)

	balance, err := env.engine.GetContribution(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, balance.Cmp(ether(1)))

	// 同一出资人再次出资累加，不重复记入出资人列表
	_, err = env.engine.Contribute(id, backer1, ether(2))
	require.NoError(t, err)
	campaign, err = env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Len(t, campaign.Contributors, 1)
	balance, err = env.engine.GetContribution(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, balance.Cmp(ether(3)))

	requireConservation(t, env, id)
}

func TestContributeBelowMinimum(t *testing.T) {
	// 场景B：最小出资0.1 ETH，出资0.05 ETH被拒且余额不变
	env := newTestEnv(t, 250)
	id := env.createCampaign(t, withMin(milliEther(100)))

	_, err := env.engine.Contribute(id, backer1, milliEther(50))
	assert.ErrorIs(t, err, ErrBelowMinimum)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.TotalRaised.Sign())
}

func TestContributeAboveMaximum(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t, withMax(ether(2)))

	_, err := env.engine.Contribute(id, backer1, ether(3))
	assert.ErrorIs(t, err, ErrAboveMaximum)

	// 上限按累计出资判断
	_, err = env.engine.Contribute(id, backer1, ether(2))
	require.NoError(t, err)
	_, err = env.engine.Contribute(id, backer1, big.NewInt(1))
	assert.ErrorIs(t, err, ErrAboveMaximum)
}

func TestContributeRejections(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)

	_, err := env.engine.Contribute(id, creatorAddr, ether(1))
	assert.ErrorIs(t, err, ErrCreatorCannotContribute)

	_, err = env.engine.Contribute(id, backer1, new(big.Int))
	assert.ErrorIs(t, err, ErrInvalidContribution)

	_, err = env.engine.Contribute(id, backer1, nil)
	assert.ErrorIs(t, err, ErrInvalidContribution)

	_, err = env.engine.Contribute(99, backer1, ether(1))
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	// 截止时间过后不再接受出资
	env.clock.Advance(30*24*time.Hour + time.Second)
	_, err = env.engine.Contribute(id, backer1, ether(1))
	assert.ErrorIs(t, err, ErrCampaignNotActive)
}

func TestGoalShortCircuit(t *testing.T) {
	// 场景C：出资10 ETH恰好达标，同一调用内转为成功
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)

	_, err := env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusSuccessful, campaign.Status)

	// 成功后不再接受出资
	_, err = env.engine.Contribute(id, backer2, ether(1))
	assert.ErrorIs(t, err, ErrCampaignNotActive)

	// 终态后结算调用失败
	_, err = env.engine.FinalizeCampaign(id)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	stats := env.engine.GetPlatformStats()
	assert.Equal(t, uint64(1), stats.SuccessfulCampaignCount)
	assert.Contains(t, env.emitter.names(), "CampaignFinalized")
}

func TestFinalizeAndRefund(t *testing.T) {
	// 场景D：过期未达标结算为失败，出资人领回全额
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)

	_, err := env.engine.Contribute(id, backer1, ether(5))
	require.NoError(t, err)

	// 未到期不能结算
	_, err = env.engine.FinalizeCampaign(id)
	assert.ErrorIs(t, err, ErrFinalizationNotDue)

	env.clock.Advance(30*24*time.Hour + time.Second)

	status, err := env.engine.FinalizeCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusFailed, status)

	refunded, err := env.engine.ClaimRefund(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, refunded.Cmp(ether(5)))
	assert.Equal(t, backer1, env.treasury.last().to)
	assert.Zero(t, env.treasury.last().amount.Cmp(ether(5)))

	// 账本条目清零，二次退款被拒
	balance, err := env.engine.GetContribution(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())
	_, err = env.engine.ClaimRefund(id, backer1)
	assert.ErrorIs(t, err, ErrNoContributionToRefund)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.TotalRaised.Sign())
	requireConservation(t, env, id)
}

func TestRefundNotAvailableWhileActive(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)
	_, err := env.engine.Contribute(id, backer1, ether(5))
	require.NoError(t, err)

	_, err = env.engine.ClaimRefund(id, backer1)
	assert.ErrorIs(t, err, ErrRefundsNotAvailable)
}

func TestCancelAndRefund(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)
	_, err := env.engine.Contribute(id, backer1, ether(2))
	require.NoError(t, err)

	// 只有创建者能取消
	err = env.engine.CancelCampaign(id, backer1)
	assert.ErrorIs(t, err, ErrNotCreator)

	// 已有出资也允许取消，取消后走退款通道
	err = env.engine.CancelCampaign(id, creatorAddr)
	require.NoError(t, err)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusCancelled, campaign.Status)

	refunded, err := env.engine.ClaimRefund(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, refunded.Cmp(ether(2)))

	// 终态后不能再取消
	err = env.engine.CancelCampaign(id, creatorAddr)
	assert.ErrorIs(t, err, ErrCannotCancelAfterResolution)
}

func TestWithdrawNoMilestones(t *testing.T) {
	// 场景E：10 ETH达标，费率2.5%，创建者实收9.75 ETH
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)
	_, err := env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)

	payout, err := env.engine.WithdrawFunds(id, 0, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(milliEther(9750)))
	assert.Equal(t, creatorAddr, env.treasury.last().to)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.FundsWithdrawn.Cmp(ether(10)))
	assert.Zero(t, env.engine.FeesCollected().Cmp(milliEther(250)))

	// 整笔只能提取一次
	_, err = env.engine.WithdrawFunds(id, 0, creatorAddr)
	assert.ErrorIs(t, err, ErrAlreadyWithdrawn)
}

func TestWithdrawRejections(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)
	_, err := env.engine.Contribute(id, backer1, ether(1))
	require.NoError(t, err)

	// 未成功不能提款
	_, err = env.engine.WithdrawFunds(id, 0, creatorAddr)
	assert.ErrorIs(t, err, ErrCampaignNotSuccessful)

	_, err = env.engine.Contribute(id, backer1, ether(9))
	require.NoError(t, err)

	// 非创建者不能提款
	_, err = env.engine.WithdrawFunds(id, 0, backer1)
	assert.ErrorIs(t, err, ErrNotCreator)

	_, err = env.engine.WithdrawFunds(99, 0, creatorAddr)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestWithdrawMilestones(t *testing.T) {
	env := newTestEnv(t, 0)
	id := env.createCampaign(t, withMilestones(
		model.MilestonePlan{Description: "prototype", PercentageBasisPoints: 5000},
		model.MilestonePlan{Description: "beta", PercentageBasisPoints: 3000},
		model.MilestonePlan{Description: "launch", PercentageBasisPoints: 2000},
	))
	_, err := env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)

	// 必须按索引升序释放
	_, err = env.engine.WithdrawFunds(id, 1, creatorAddr)
	assert.ErrorIs(t, err, ErrMilestoneSequenceViolation)

	payout, err := env.engine.WithdrawFunds(id, 0, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(ether(5)))

	// 同一里程碑至多释放一次
	_, err = env.engine.WithdrawFunds(id, 0, creatorAddr)
	assert.ErrorIs(t, err, ErrMilestoneAlreadyReleased)

	payout, err = env.engine.WithdrawFunds(id, 1, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(ether(3)))

	_, err = env.engine.WithdrawFunds(id, 5, creatorAddr)
	assert.ErrorIs(t, err, ErrMilestoneIndexOutOfRange)

	payout, err = env.engine.WithdrawFunds(id, 2, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(ether(2)))

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.FundsWithdrawn.Cmp(ether(10)))
	for _, m := range campaign.Milestones {
		assert.True(t, m.Released)
	}
}

func TestWithdrawMilestoneFee(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t, withMilestones(
		model.MilestonePlan{Description: "half", PercentageBasisPoints: 5000},
	))
	_, err := env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)

	// 5 ETH应得，2.5%手续费，实收4.875 ETH
	payout, err := env.engine.WithdrawFunds(id, 0, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(milliEther(4875)))
	assert.Zero(t, env.engine.FeesCollected().Cmp(milliEther(125)))
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t, withMilestones(
		model.MilestonePlan{Description: "half", PercentageBasisPoints: 5000},
		model.MilestonePlan{Description: "rest", PercentageBasisPoints: 5000},
	))
	_, err := env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)

	env.treasury.failNext = errors.New("recipient unreachable")
	_, err = env.engine.WithdrawFunds(id, 0, creatorAddr)
	assert.ErrorIs(t, err, ErrTransferFailed)

	// 提款的全部状态变更回滚
	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.FundsWithdrawn.Sign())
	assert.False(t, campaign.Milestones[0].Released)
	assert.Zero(t, env.engine.FeesCollected().Sign())

	// 回滚后可重试
	payout, err := env.engine.WithdrawFunds(id, 0, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(milliEther(4875)))
}

func TestRefundTransferFailureRollsBack(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)
	_, err := env.engine.Contribute(id, backer1, ether(5))
	require.NoError(t, err)
	env.clock.Advance(31 * 24 * time.Hour)
	_, err = env.engine.FinalizeCampaign(id)
	require.NoError(t, err)

	env.treasury.failNext = errors.New("recipient unreachable")
	_, err = env.engine.ClaimRefund(id, backer1)
	assert.ErrorIs(t, err, ErrTransferFailed)

	// 账本恢复，重试成功
	balance, err := env.engine.GetContribution(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, balance.Cmp(ether(5)))
	requireConservation(t, env, id)

	refunded, err := env.engine.ClaimRefund(id, backer1)
	require.NoError(t, err)
	assert.Zero(t, refunded.Cmp(ether(5)))
}

func TestUpdatePlatformFee(t *testing.T) {
	// 场景F：600bps被拒，300bps生效并影响后续费用计算
	env := newTestEnv(t, 250)

	err := env.engine.UpdatePlatformFee(ownerAddr, 600)
	assert.ErrorIs(t, err, ErrFeeExceedsCap)
	assert.Equal(t, uint64(250), env.engine.PlatformFeeBasisPoints())

	err = env.engine.UpdatePlatformFee(backer1, 300)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = env.engine.UpdatePlatformFee(ownerAddr, 300)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), env.engine.PlatformFeeBasisPoints())

	id := env.createCampaign(t)
	_, err = env.engine.Contribute(id, backer1, ether(10))
	require.NoError(t, err)
	payout, err := env.engine.WithdrawFunds(id, 0, creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, payout.Cmp(milliEther(9700)))
}

func TestMonotonicStatus(t *testing.T) {
	env := newTestEnv(t, 250)

	// 失败后任何操作都无法离开终态
	failed := env.createCampaign(t)
	_, err := env.engine.Contribute(failed, backer1, ether(1))
	require.NoError(t, err)
	env.clock.Advance(31 * 24 * time.Hour)
	_, err = env.engine.FinalizeCampaign(failed)
	require.NoError(t, err)

	_, err = env.engine.FinalizeCampaign(failed)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	err = env.engine.CancelCampaign(failed, creatorAddr)
	assert.ErrorIs(t, err, ErrCannotCancelAfterResolution)
	_, err = env.engine.Contribute(failed, backer2, ether(1))
	assert.ErrorIs(t, err, ErrCampaignNotActive)

	campaign, err := env.engine.GetCampaign(failed)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusFailed, campaign.Status)
}

func TestConservationAcrossOperations(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)

	steps := []struct {
		backer common.Address
		amount *big.Int
	}{
		{backer1, ether(1)},
		{backer2, ether(2)},
		{backer1, milliEther(1500)},
		{backer2, milliEther(250)},
	}
	for _, s := range steps {
		_, err := env.engine.Contribute(id, s.backer, s.amount)
		require.NoError(t, err)
		requireConservation(t, env, id)
	}

	env.clock.Advance(31 * 24 * time.Hour)
	_, err := env.engine.FinalizeCampaign(id)
	require.NoError(t, err)

	_, err = env.engine.ClaimRefund(id, backer1)
	require.NoError(t, err)
	requireConservation(t, env, id)

	_, err = env.engine.ClaimRefund(id, backer2)
	require.NoError(t, err)
	requireConservation(t, env, id)

	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Zero(t, campaign.TotalRaised.Sign())
}

func TestFinalizationDueView(t *testing.T) {
	env := newTestEnv(t, 250)
	id := env.createCampaign(t)

	due, err := env.engine.FinalizationDue(id)
	require.NoError(t, err)
	assert.False(t, due)

	env.clock.Advance(31 * 24 * time.Hour)

	// 存储状态仍是Active，只有读侧视图显示待结算
	due, err = env.engine.FinalizationDue(id)
	require.NoError(t, err)
	assert.True(t, due)
	campaign, err := env.engine.GetCampaign(id)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusActive, campaign.Status)

	assert.Equal(t, []uint64{id}, env.engine.DueCampaigns())
}
