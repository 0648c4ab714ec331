package game

import (
	"acquire/dto"
	"acquire/utils"
)

// Player 玩家账本：现金、手里未放置的 tile、各品牌持股数
type Player struct {
	ID     string
	Cash   int
	Tiles  []string
	Stocks map[string]int
}

func NewPlayer(id string) *Player {
	stocks := make(map[string]int, len(HotelNames))
	for _, name := range HotelNames {
		stocks[name] = 0
	}
	return &Player{
		ID:     id,
		Cash:   InitialCash,
		Stocks: stocks,
	}
}

func (p *Player) HasTile(tile string) bool {
	for _, t := range p.Tiles {
		if t == tile {
			return true
		}
	}
	return false
}

// TakeTile 从手牌移除一张 tile，不在手里时返回 false
func (p *Player) TakeTile(tile string) bool {
	for i, t := range p.Tiles {
		if t == tile {
			p.Tiles = utils.RemoveAtIndex(p.Tiles, i)
			return true
		}
	}
	return false
}

func (p *Player) GiveTile(tile string) {
	p.Tiles = append(p.Tiles, tile)
}

func (p *Player) AddCash(amount int) {
	p.Cash += amount
}

// SpendCash 现金不足时整笔拒绝，余额不允许为负
func (p *Player) SpendCash(amount int) bool {
	if amount < 0 || p.Cash < amount {
		return false
	}
	p.Cash -= amount
	return true
}

func (p *Player) AddStocks(hotel string, n int) {
	p.Stocks[hotel] += n
}

// RemoveStocks 持股不足时不动账并返回 false
func (p *Player) RemoveStocks(hotel string, n int) bool {
	if n < 0 || p.Stocks[hotel] < n {
		return false
	}
	p.Stocks[hotel] -= n
	return true
}

func (p *Player) Snapshot() *dto.Player {
	tiles := make([]string, len(p.Tiles))
	copy(tiles, p.Tiles)
	stocks := make(map[string]int, len(p.Stocks))
	for k, v := range p.Stocks {
		stocks[k] = v
	}
	return &dto.Player{
		PlayerID: p.ID,
		Cash:     p.Cash,
		Tiles:    tiles,
		Stocks:   stocks,
	}
}
