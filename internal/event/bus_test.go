package event

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProcessor 收集收到的事件
type recordingProcessor struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingProcessor) GetName() string { return "recording" }

func (p *recordingProcessor) Process(e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestBusDispatchesToAllProcessors(t *testing.T) {
	bus, err := NewBus(4)
	require.NoError(t, err)
	defer bus.Stop()

	p1 := &recordingProcessor{}
	p2 := &recordingProcessor{}
	bus.Register(p1)
	bus.Register(p2)

	bus.Emit(ContributionMade{
		ID:       3,
		Backer:   common.HexToAddress("0xB1000000000000000000000000000000000000B1"),
		Amount:   big.NewInt(100),
		NewTotal: big.NewInt(100),
	})

	waitFor(t, func() bool { return p1.count() == 1 && p2.count() == 1 })

	p1.mu.Lock()
	defer p1.mu.Unlock()
	assert.Equal(t, "ContributionMade", p1.events[0].Name())
	assert.Equal(t, uint64(3), p1.events[0].CampaignID())
}

func TestBusProcessorErrorDoesNotBlockOthers(t *testing.T) {
	bus, err := NewBus(4)
	require.NoError(t, err)
	defer bus.Stop()

	failing := &recordingProcessor{err: errors.New("db down")}
	healthy := &recordingProcessor{}
	bus.Register(failing)
	bus.Register(healthy)

	for i := 0; i < 3; i++ {
		bus.Emit(CampaignCreated{ID: uint64(i), Title: "t"})
	}

	waitFor(t, func() bool { return failing.count() == 3 && healthy.count() == 3 })
}
