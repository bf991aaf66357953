package engine

import (
	"github.com/blues/cfe/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// campaignStore 活动存储，引擎是唯一持有可变引用的组件。
// 活动按ID顺序存放，终态活动保留不删除。
type campaignStore struct {
	campaigns []*model.Campaign
	byCreator map[common.Address][]uint64
	byBacker  map[common.Address][]uint64
}

func newCampaignStore() *campaignStore {
	return &campaignStore{
		byCreator: make(map[common.Address][]uint64),
		byBacker:  make(map[common.Address][]uint64),
	}
}

// nextID 下一个待分配的活动ID
func (s *campaignStore) nextID() uint64 {
	return uint64(len(s.campaigns))
}

// add 存入新活动并建立创建者索引，返回分配的ID
func (s *campaignStore) add(c *model.Campaign) uint64 {
	id := s.nextID()
	c.ID = id
	s.campaigns = append(s.campaigns, c)
	s.byCreator[c.Creator] = append(s.byCreator[c.Creator], id)
	return id
}

// get 按ID取活动
func (s *campaignStore) get(id uint64) (*model.Campaign, bool) {
	if id >= uint64(len(s.campaigns)) {
		return nil, false
	}
	return s.campaigns[id], true
}

// indexBacker 记录出资人首次参与的活动
func (s *campaignStore) indexBacker(backer common.Address, id uint64) {
	s.byBacker[backer] = append(s.byBacker[backer], id)
}

// createdBy 创建者名下的活动ID
func (s *campaignStore) createdBy(creator common.Address) []uint64 {
	ids := s.byCreator[creator]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// backedBy 出资人参与过的活动ID
func (s *campaignStore) backedBy(backer common.Address) []uint64 {
	ids := s.byBacker[backer]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

func (s *campaignStore) count() uint64 {
	return uint64(len(s.campaigns))
}
