package game

import (
	"time"

	"golang.org/x/exp/rand"

	"acquire/dto"
)

// Play 是一局游戏对外的全部操作。标准模式和并购模式各实现一份，
// 并购模式包一层标准模式并只特化自己关心的操作。
type Play interface {
	PlaceTile(tile string) dto.PlacementResult
	FoundHotel(tile, hotelName string) dto.FoundResult
	BuyStocks(requests []dto.BuyStockRequest, playerID string) dto.PlayerResult
	TradeAndSellStocks(trade, sell map[string]int, playerID string) dto.PlayerResult
	ChangeTurn() dto.TurnStatus
	DistributeBonus(hotelName string) dto.Dividend
	DistributeEndGameBonus() []dto.Dividend
	IsGameEnd() bool
	Winner() string
	CurrentPlayer() string
	PlayersID() []string
	PlayerSnapshot(playerID string) *dto.Player
	GetBoard() *dto.Board
	GetGameStats(playerID string) *dto.GameStats
	Mode() string
}

const (
	ModeStandard = "standard"
	ModeMerger   = "merger"
)

// StdGame 标准模式：回合顺序、发牌堆、所有资金/股票结算都在这里
type StdGame struct {
	board   *Board
	players []*Player
	pile    []string
	current int
}

var rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// NewStdGame 洗 108 张牌堆、每人发 6 张手牌
func NewStdGame(playerIDs []string) *StdGame {
	pile := AllTiles()
	rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })

	players := make([]*Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		players = append(players, NewPlayer(id))
	}

	g := &StdGame{
		board:   NewBoard(),
		players: players,
		pile:    pile,
	}
	for _, p := range g.players {
		for i := 0; i < HandSize && len(g.pile) > 0; i++ {
			p.GiveTile(g.pile[0])
			g.pile = g.pile[1:]
		}
	}
	return g
}

func (g *StdGame) Mode() string {
	return ModeStandard
}

func (g *StdGame) Board() *Board {
	return g.board
}

func (g *StdGame) CurrentPlayer() string {
	if len(g.players) == 0 {
		return ""
	}
	return g.players[g.current].ID
}

func (g *StdGame) PlayersID() []string {
	ids := make([]string, 0, len(g.players))
	for _, p := range g.players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (g *StdGame) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *StdGame) PlayerSnapshot(playerID string) *dto.Player {
	if p := g.playerByID(playerID); p != nil {
		return p.Snapshot()
	}
	return nil
}

// PlaceTile 当前玩家放一张手牌。手里没有这张 tile 时拒绝，不改任何状态。
// 独立/扩建/并购都会把 tile 从手牌拿走；创建场景要等 FoundHotel 才落子。
func (g *StdGame) PlaceTile(tile string) dto.PlacementResult {
	player := g.players[g.current]
	if !player.HasTile(tile) {
		return dto.PlacementResult{Status: false}
	}

	result := g.board.GetPlaceTileType(tile)
	if !result.Status {
		return result
	}

	switch result.Type {
	case dto.PlaceTypeIndependent, dto.PlaceTypeDependent, dto.PlaceTypeMerge:
		player.TakeTile(tile)
	}
	return result
}

// FoundHotel 创建酒店。创建奖励股发给当前玩家（库存为 0 时没有），
// tile 无论如何都从手牌移除。
func (g *StdGame) FoundHotel(tile, hotelName string) dto.FoundResult {
	result := g.board.BuildHotel(tile, hotelName)
	if result.Error != "" {
		return result
	}

	player := g.players[g.current]
	player.TakeTile(tile)
	if result.StockAlloted {
		player.AddStocks(hotelName, 1)
	}
	return result
}

// BuyStocks 每笔请求独立校验：库存够、现金够才成交，不够就整笔跳过。
// 一次调用里的多笔请求之间没有原子性，这是有意为之的简化。
func (g *StdGame) BuyStocks(requests []dto.BuyStockRequest, playerID string) dto.PlayerResult {
	player := g.playerByID(playerID)
	if player == nil {
		return dto.PlayerResult{Error: "玩家不存在"}
	}

	for _, req := range requests {
		hotel := g.board.Hotel(req.Hotel)
		if hotel == nil || !hotel.Active || req.Count <= 0 {
			continue
		}
		cost := hotel.StockPrice() * req.Count
		if hotel.StocksAvailable < req.Count || player.Cash < cost {
			continue
		}
		hotel.TakeStocks(req.Count)
		player.SpendCash(cost)
		player.AddStocks(req.Hotel, req.Count)
	}
	return dto.PlayerResult{Player: player.Snapshot()}
}

// TradeAndSellStocks 只在并购模式下有意义
func (g *StdGame) TradeAndSellStocks(trade, sell map[string]int, playerID string) dto.PlayerResult {
	return dto.PlayerResult{Error: "当前不在并购清算阶段"}
}

// ChangeTurn 给当前玩家补一张牌（牌堆还有的话），然后轮到下一位
func (g *StdGame) ChangeTurn() dto.TurnStatus {
	player := g.players[g.current]
	if len(g.pile) > 0 {
		player.GiveTile(g.pile[0])
		g.pile = g.pile[1:]
	}
	g.current = (g.current + 1) % len(g.players)
	return dto.TurnStatus{Status: g.players[g.current].ID}
}

type stockHolder struct {
	player *Player
	count  int
}

// holdersOf 按持股数从大到小排（同数按入座顺序），不持股的不算
func (g *StdGame) holdersOf(hotelName string) []stockHolder {
	var holders []stockHolder
	for _, p := range g.players {
		if count := p.Stocks[hotelName]; count > 0 {
			holders = append(holders, stockHolder{player: p, count: count})
		}
	}
	for i := 1; i < len(holders); i++ {
		for j := i; j > 0 && holders[j].count > holders[j-1].count; j-- {
			holders[j], holders[j-1] = holders[j-1], holders[j]
		}
	}
	return holders
}

// DistributeBonus 按持股数发放大小红利，三种情况按优先级判定：
//  1. 多人并列第一：平分 大红利+小红利，没有单独的小红利；
//  2. 第一名唯一且没有第二名：独拿 大红利+小红利；
//  3. 其余：第一名拿大红利，并列第二的平分小红利。
//
// 酒店不存在或无人持股时返回空结果，不报错，方便终局循环扫尾。
func (g *StdGame) DistributeBonus(hotelName string) dto.Dividend {
	dividend := dto.Dividend{Hotel: hotelName, Payouts: make(map[string]int)}

	hotel := g.board.Hotel(hotelName)
	if hotel == nil {
		return dividend
	}
	holders := g.holdersOf(hotelName)
	if len(holders) == 0 {
		return dividend
	}

	primary := hotel.PrimaryBonus()
	secondary := hotel.SecondaryBonus()

	topCount := holders[0].count
	var top []stockHolder
	for _, h := range holders {
		if h.count == topCount {
			top = append(top, h)
		}
	}

	switch {
	case len(top) >= 2:
		share := (primary + secondary) / len(top)
		for _, h := range top {
			dividend.Payouts[h.player.ID] = share
		}
	case len(holders) == 1:
		dividend.Payouts[holders[0].player.ID] = primary + secondary
	default:
		dividend.Payouts[holders[0].player.ID] = primary
		secondCount := holders[1].count
		var second []stockHolder
		for _, h := range holders[1:] {
			if h.count == secondCount {
				second = append(second, h)
			}
		}
		share := secondary / len(second)
		for _, h := range second {
			dividend.Payouts[h.player.ID] += share
		}
	}

	for id, money := range dividend.Payouts {
		g.playerByID(id).AddCash(money)
	}
	return dividend
}

// DistributeEndGameBonus 终局给每家酒店独立发一轮红利
func (g *StdGame) DistributeEndGameBonus() []dto.Dividend {
	dividends := make([]dto.Dividend, 0, len(g.board.Hotels()))
	for _, h := range g.board.Hotels() {
		dividends = append(dividends, g.DistributeBonus(h.Name))
	}
	return dividends
}

// IsGameEnd 牌堆摸完是权威终局条件；某家酒店铺满棋盘是扩展条件
func (g *StdGame) IsGameEnd() bool {
	if len(g.pile) == 0 {
		return true
	}
	for _, h := range g.board.Hotels() {
		if h.Size() >= EndGameHotelSize {
			return true
		}
	}
	return false
}

// Winner 现金最多者胜，并列时按入座顺序取先手
func (g *StdGame) Winner() string {
	if len(g.players) == 0 {
		return ""
	}
	winner := g.players[0]
	for _, p := range g.players[1:] {
		if p.Cash > winner.Cash {
			winner = p
		}
	}
	return winner.ID
}

func (g *StdGame) GetBoard() *dto.Board {
	return g.board.Snapshot()
}

// portfolioValue 现金 + 持股按当前股价折算
func (g *StdGame) portfolioValue(p *Player) int {
	total := p.Cash
	for name, count := range p.Stocks {
		total += count * PriceOf(name, g.board.Hotel(name).Size())
	}
	return total
}

func (g *StdGame) GetGameStats(playerID string) *dto.GameStats {
	stats := &dto.GameStats{
		Board:           g.board.Snapshot(),
		PlayersID:       g.PlayersID(),
		CurrentPlayerID: g.CurrentPlayer(),
		IsGameEnd:       g.IsGameEnd(),
		Mode:            ModeStandard,
	}
	if p := g.playerByID(playerID); p != nil {
		stats.PlayerPortfolio = &dto.Portfolio{
			Player:     p.Snapshot(),
			TotalValue: g.portfolioValue(p),
		}
	}
	return stats
}
