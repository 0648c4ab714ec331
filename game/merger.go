package game

import "acquire/dto"

// FindMergeType 判定并购类型：所有酒店规模相同是选择式并购，由玩家决定
// 谁留下；否则规模最大者自动成为主并公司，非主并方里规模最小的一家成为
// 被并购目标（最小值并列时取棋盘顺序里先遇到的那家，维持源规则）。
// 规模达到安全线的酒店不能被并购。
func FindMergeType(hotels []*Hotel) *dto.MergeDetails {
	briefs := make([]dto.HotelBrief, 0, len(hotels))
	for _, h := range hotels {
		briefs = append(briefs, dto.HotelBrief{
			Name:     h.Name,
			Size:     h.Size(),
			BaseTile: h.BaseTile(),
		})
	}

	allEqual := true
	for _, b := range briefs[1:] {
		if b.Size != briefs[0].Size {
			allEqual = false
			break
		}
	}
	if allEqual {
		return &dto.MergeDetails{
			TypeOfMerge: dto.MergeTypeSelective,
			Hotels:      briefs,
		}
	}

	acquirer := briefs[0]
	for _, b := range briefs[1:] {
		if b.Size > acquirer.Size {
			acquirer = b
		}
	}

	var target []string
	minSize := -1
	for _, b := range briefs {
		if b.Name == acquirer.Name || b.Size >= SafeHotelSize {
			continue
		}
		if minSize == -1 || b.Size < minSize {
			minSize = b.Size
			target = []string{b.Name}
		}
	}

	return &dto.MergeDetails{
		TypeOfMerge: dto.MergeTypeAuto,
		Acquirer:    acquirer.Name,
		Target:      target,
		Hotels:      briefs,
	}
}

// Merger 并购进行中的临时模式：包住标准局，只接管清算相关操作，
// 其余操作原样转给底层的局。清算完成后丢弃，底层的局重新成为唯一状态。
type Merger struct {
	original *StdGame
	details  *dto.MergeDetails
	ready    bool            // 主并公司已定，允许清算
	pending  map[string]bool // 还没清算完的持股玩家
}

// NewMerger 进入并购模式。自动并购当场发放被并购方红利并圈定待清算
// 玩家；选择式并购要等 SetupMergerEntities 被调用。
func NewMerger(g *StdGame, details *dto.MergeDetails) *Merger {
	m := &Merger{
		original: g,
		details:  details,
		pending:  make(map[string]bool),
	}
	if details.TypeOfMerge == dto.MergeTypeAuto {
		m.begin()
	}
	return m
}

// SetupMergerEntities 选择式并购里玩家选定了留下的酒店，其余受影响的
// 全部成为被并购目标（安全酒店除外）。
func (m *Merger) SetupMergerEntities(acquirerName string) *dto.MergeDetails {
	m.details.Acquirer = acquirerName
	m.details.Target = nil
	for _, b := range m.details.Hotels {
		if b.Name == acquirerName || b.Size >= SafeHotelSize {
			continue
		}
		m.details.Target = append(m.details.Target, b.Name)
	}
	m.begin()
	return m.details
}

// begin 发放每家被并购酒店的红利，并圈定所有需要清算的持股玩家
func (m *Merger) begin() {
	for _, target := range m.details.Target {
		m.original.DistributeBonus(target)
		for _, h := range m.original.holdersOf(target) {
			m.pending[h.player.ID] = true
		}
	}
	m.ready = true
}

func (m *Merger) Mode() string {
	return ModeMerger
}

func (m *Merger) Original() *StdGame {
	return m.original
}

func (m *Merger) Details() *dto.MergeDetails {
	return m.details
}

// PendingPlayers 仍需清算的玩家，按入座顺序
func (m *Merger) PendingPlayers() []string {
	var ids []string
	for _, id := range m.original.PlayersID() {
		if m.pending[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsResolved 主并公司已定且所有持股玩家都清算完毕
func (m *Merger) IsResolved() bool {
	return m.ready && len(m.pending) == 0
}

// TradeAndSellStocks 一名玩家对被并购酒店的持股做清算：先卖后换。
// 卖出按当前股价折现、股票回到酒店库存；换股按 2:1 取整，换来的
// 股从主并公司库存里扣、换出的股回到被并购公司库存。既不卖也不换
// 的继续留在玩家手里。
func (m *Merger) TradeAndSellStocks(trade, sell map[string]int, playerID string) dto.PlayerResult {
	player := m.original.playerByID(playerID)
	if player == nil {
		return dto.PlayerResult{Error: "玩家不存在"}
	}
	if !m.ready {
		return dto.PlayerResult{Error: "还没有选定主并公司"}
	}

	acquirer := m.original.board.Hotel(m.details.Acquirer)

	for _, targetName := range m.details.Target {
		target := m.original.board.Hotel(targetName)
		if target == nil {
			continue
		}

		if count := sell[targetName]; count > 0 {
			if player.RemoveStocks(targetName, count) {
				player.AddCash(count * target.StockPrice())
				target.ReturnStocks(count)
			}
		}

		if count := trade[targetName]; count > 0 {
			count -= count % TradeRate // 只按整对换
			gained := count / TradeRate
			if count > 0 && player.Stocks[targetName] >= count && acquirer != nil {
				if acquirer.TakeStocks(gained) {
					player.RemoveStocks(targetName, count)
					player.AddStocks(m.details.Acquirer, gained)
					// 换出去的股也要回库存，品牌总量恒为 25
					target.ReturnStocks(count)
				}
			}
		}
	}

	delete(m.pending, playerID)
	return dto.PlayerResult{Player: player.Snapshot()}
}

// Complete 清算收尾：被并购酒店的 tile 全部并入主并公司，归还底层的局。
// 调用方负责把注册表里的条目换回去。
func (m *Merger) Complete() *StdGame {
	m.original.board.AbsorbMerge(m.details.Acquirer, m.details.Target)
	return m.original
}

// BuyStocks 并购期间禁止买股
func (m *Merger) BuyStocks(requests []dto.BuyStockRequest, playerID string) dto.PlayerResult {
	return dto.PlayerResult{Error: "并购清算期间不能购买股票"}
}

// FoundHotel 并购期间禁止创建酒店
func (m *Merger) FoundHotel(tile, hotelName string) dto.FoundResult {
	return dto.FoundResult{Error: "并购清算期间不能创建酒店"}
}

// 其余操作原样代理给底层的局

func (m *Merger) PlaceTile(tile string) dto.PlacementResult {
	return m.original.PlaceTile(tile)
}

func (m *Merger) ChangeTurn() dto.TurnStatus {
	return m.original.ChangeTurn()
}

func (m *Merger) DistributeBonus(hotelName string) dto.Dividend {
	return m.original.DistributeBonus(hotelName)
}

func (m *Merger) DistributeEndGameBonus() []dto.Dividend {
	return m.original.DistributeEndGameBonus()
}

func (m *Merger) IsGameEnd() bool {
	return m.original.IsGameEnd()
}

func (m *Merger) Winner() string {
	return m.original.Winner()
}

func (m *Merger) CurrentPlayer() string {
	return m.original.CurrentPlayer()
}

func (m *Merger) PlayersID() []string {
	return m.original.PlayersID()
}

func (m *Merger) PlayerSnapshot(playerID string) *dto.Player {
	return m.original.PlayerSnapshot(playerID)
}

func (m *Merger) GetBoard() *dto.Board {
	return m.original.GetBoard()
}

func (m *Merger) GetGameStats(playerID string) *dto.GameStats {
	stats := m.original.GetGameStats(playerID)
	stats.Mode = ModeMerger
	return stats
}
