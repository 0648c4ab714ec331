package game

import (
	"testing"

	"acquire/dto"
)

// newFixedGame 不洗牌不发牌的局，测试自己摆手牌和牌堆
func newFixedGame(playerIDs ...string) *StdGame {
	players := make([]*Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		players = append(players, NewPlayer(id))
	}
	return &StdGame{
		board:   NewBoard(),
		players: players,
		pile:    []string{"12I", "12H", "12G", "12F"},
	}
}

func TestNewStdGameDealsHands(t *testing.T) {
	g := NewStdGame([]string{"p1", "p2", "p3"})

	if len(g.pile) != 108-3*HandSize {
		t.Fatalf("发牌后牌堆应剩 %d 张，实际 %d", 108-3*HandSize, len(g.pile))
	}
	seen := make(map[string]bool)
	for _, p := range g.players {
		if len(p.Tiles) != HandSize {
			t.Fatalf("玩家 %s 手牌应为 %d 张，实际 %d", p.ID, HandSize, len(p.Tiles))
		}
		if p.Cash != InitialCash {
			t.Fatalf("初始资金应为 %d，实际 %d", InitialCash, p.Cash)
		}
		for _, tile := range p.Tiles {
			if seen[tile] {
				t.Fatalf("tile %s 发给了两个人", tile)
			}
			seen[tile] = true
		}
	}
	if g.CurrentPlayer() != "p1" {
		t.Fatalf("先手应为 p1，实际 %s", g.CurrentPlayer())
	}
}

func TestPlaceTileRejectsUnownedTile(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.players[0].Tiles = []string{"1A"}

	result := g.PlaceTile("5E")
	if result.Status {
		t.Fatal("手里没有的 tile 不能放")
	}
	if len(g.players[0].Tiles) != 1 {
		t.Fatal("被拒绝的放置不应动手牌")
	}
}

func TestPlaceTileRemovesFromHand(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.players[0].Tiles = []string{"5E", "1A"}

	result := g.PlaceTile("5E")
	if !result.Status || result.Type != dto.PlaceTypeIndependent {
		t.Fatalf("放置失败: %+v", result)
	}
	if g.players[0].HasTile("5E") {
		t.Fatal("放下的 tile 应从手牌移除")
	}
}

// 创建场景 tile 在 FoundHotel 时才离手
func TestPlaceTileBuildKeepsTileUntilFound(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.players[0].Tiles = []string{"5E", "5F"}
	g.PlaceTile("5E")

	result := g.PlaceTile("5F")
	if result.Type != dto.PlaceTypeBuild {
		t.Fatalf("应判定为创建，实际 %s", result.Type)
	}
	if !g.players[0].HasTile("5F") {
		t.Fatal("创建判定阶段 tile 还不应离手")
	}

	g.FoundHotel("5F", "Continental")
	if g.players[0].HasTile("5F") {
		t.Fatal("创建完成后 tile 应离手")
	}
}

func TestFoundHotelRewardsFounder(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.players[0].Tiles = []string{"5E", "5F"}
	g.PlaceTile("5E")
	g.PlaceTile("5F")

	result := g.FoundHotel("5F", "Tower")
	if result.Error != "" {
		t.Fatalf("创建失败: %s", result.Error)
	}
	if !result.StockAlloted {
		t.Fatal("库存充足时应发奖励股")
	}
	if g.players[0].Stocks["Tower"] != 1 {
		t.Fatalf("创建者应得 1 股，实际 %d", g.players[0].Stocks["Tower"])
	}
	if g.board.Hotel("Tower").StocksAvailable != TotalStocks-1 {
		t.Fatal("奖励股应从库存扣除")
	}
}

func TestFoundHotelWithoutStockLeft(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.players[0].Tiles = []string{"5E", "5F"}
	g.PlaceTile("5E")
	g.PlaceTile("5F")
	g.board.Hotel("Tower").StocksAvailable = 0

	result := g.FoundHotel("5F", "Tower")
	if result.Error != "" {
		t.Fatalf("创建失败: %s", result.Error)
	}
	if result.StockAlloted {
		t.Fatal("库存为 0 时不应有奖励股")
	}
	if g.players[0].Stocks["Tower"] != 0 {
		t.Fatal("没有奖励股时持股不应变")
	}
}

func TestBuyStocks(t *testing.T) {
	g := newFixedGame("p1", "p2")
	tower := g.board.Hotel("Tower")
	tower.Activate()
	tower.Absorb([]string{"1A", "1B", "1C"}) // 规模 3，股价 300

	result := g.BuyStocks([]dto.BuyStockRequest{{Hotel: "Tower", Count: 3}}, "p1")
	if result.Error != "" {
		t.Fatalf("购股失败: %s", result.Error)
	}
	if result.Player.Cash != InitialCash-900 {
		t.Fatalf("应扣 900，余额 %d", result.Player.Cash)
	}
	if result.Player.Stocks["Tower"] != 3 {
		t.Fatalf("应持 3 股，实际 %d", result.Player.Stocks["Tower"])
	}
	if tower.StocksAvailable != TotalStocks-3 {
		t.Fatalf("库存应剩 %d，实际 %d", TotalStocks-3, tower.StocksAvailable)
	}
}

func TestBuyStocksSkipsInvalidRequests(t *testing.T) {
	g := newFixedGame("p1", "p2")
	tower := g.board.Hotel("Tower")
	tower.Activate()
	tower.Absorb([]string{"1A", "1B"}) // 股价 200
	imperial := g.board.Hotel("Imperial")
	imperial.Activate()
	imperial.Absorb([]string{"8A", "8B"}) // 股价 400
	imperial.StocksAvailable = 1

	p := g.players[0]
	p.Cash = 500

	result := g.BuyStocks([]dto.BuyStockRequest{
		{Hotel: "Sackson", Count: 1},  // 未创建，跳过
		{Hotel: "Ritz", Count: 1},     // 不存在，跳过
		{Hotel: "Imperial", Count: 2}, // 库存不足，跳过
		{Hotel: "Tower", Count: 9},    // 现金不足，跳过
		{Hotel: "Tower", Count: -1},   // 非法数量，跳过
		{Hotel: "Tower", Count: 2},    // 成交
	}, "p1")

	if result.Player.Cash != 100 {
		t.Fatalf("只应成交最后一笔，余额 %d", result.Player.Cash)
	}
	if result.Player.Stocks["Tower"] != 2 || result.Player.Stocks["Imperial"] != 0 {
		t.Fatalf("持股错误: %v", result.Player.Stocks)
	}

	if result := g.BuyStocks(nil, "ghost"); result.Error == "" {
		t.Fatal("未知玩家应报错")
	}
}

// 任一品牌在任何时刻：库存 + 所有玩家持股 = 25
func TestStockConservation(t *testing.T) {
	g := newFixedGame("p1", "p2", "p3")
	g.players[0].Tiles = []string{"5E", "5F"}
	g.PlaceTile("5E")
	g.PlaceTile("5F")
	g.FoundHotel("5F", "Festival")
	g.BuyStocks([]dto.BuyStockRequest{{Hotel: "Festival", Count: 3}}, "p2")
	g.BuyStocks([]dto.BuyStockRequest{{Hotel: "Festival", Count: 2}}, "p3")

	total := g.board.Hotel("Festival").StocksAvailable
	for _, p := range g.players {
		total += p.Stocks["Festival"]
	}
	if total != TotalStocks {
		t.Fatalf("股票不守恒: %d", total)
	}
}

func TestChangeTurn(t *testing.T) {
	g := newFixedGame("p1", "p2", "p3")

	turn := g.ChangeTurn()
	if turn.Status != "p2" {
		t.Fatalf("应轮到 p2，实际 %s", turn.Status)
	}
	if len(g.players[0].Tiles) != 1 {
		t.Fatal("换手前应给当前玩家补一张牌")
	}

	g.ChangeTurn()
	turn = g.ChangeTurn()
	if turn.Status != "p1" {
		t.Fatalf("应轮回 p1，实际 %s", turn.Status)
	}
}

func TestChangeTurnWithEmptyPile(t *testing.T) {
	g := newFixedGame("p1", "p2")
	g.pile = nil

	turn := g.ChangeTurn()
	if turn.Status != "p2" {
		t.Fatalf("牌堆空了也要正常轮转，实际 %s", turn.Status)
	}
	if len(g.players[0].Tiles) != 0 {
		t.Fatal("牌堆空了就不补牌")
	}
}

// 红利发放的三种判定，Tower 规模 4：大红利 4000、小红利 2000
func setupBonusGame(stocks map[string]int) *StdGame {
	ids := make([]string, 0, len(stocks))
	for _, id := range []string{"p1", "p2", "p3"} {
		if _, ok := stocks[id]; ok {
			ids = append(ids, id)
		}
	}
	g := newFixedGame(ids...)
	tower := g.board.Hotel("Tower")
	tower.Activate()
	tower.Absorb([]string{"1A", "1B", "1C", "1D"})
	for id, count := range stocks {
		g.playerByID(id).Stocks["Tower"] = count
	}
	return g
}

func TestDistributeBonusUniqueTopWithSecond(t *testing.T) {
	g := setupBonusGame(map[string]int{"p1": 5, "p2": 3, "p3": 1})

	dividend := g.DistributeBonus("Tower")
	want := map[string]int{"p1": 4000, "p2": 2000}
	for id, money := range want {
		if dividend.Payouts[id] != money {
			t.Fatalf("玩家 %s 应得 %d，实际 %d", id, money, dividend.Payouts[id])
		}
	}
	if _, ok := dividend.Payouts["p3"]; ok {
		t.Fatal("第三名不应有红利")
	}
	if g.playerByID("p1").Cash != InitialCash+4000 {
		t.Fatal("红利应真实入账")
	}
}

func TestDistributeBonusTiedTop(t *testing.T) {
	g := setupBonusGame(map[string]int{"p1": 5, "p2": 5, "p3": 3})

	dividend := g.DistributeBonus("Tower")
	if dividend.Payouts["p1"] != 3000 || dividend.Payouts["p2"] != 3000 {
		t.Fatalf("并列第一应平分 6000: %v", dividend.Payouts)
	}
	if _, ok := dividend.Payouts["p3"]; ok {
		t.Fatal("并列第一时没有单独的小红利")
	}
}

func TestDistributeBonusSoleHolder(t *testing.T) {
	g := setupBonusGame(map[string]int{"p1": 5})

	dividend := g.DistributeBonus("Tower")
	if dividend.Payouts["p1"] != 6000 {
		t.Fatalf("唯一持股人应独拿 6000，实际 %d", dividend.Payouts["p1"])
	}
}

func TestDistributeBonusTiedSecond(t *testing.T) {
	g := setupBonusGame(map[string]int{"p1": 5, "p2": 3, "p3": 3})

	dividend := g.DistributeBonus("Tower")
	if dividend.Payouts["p1"] != 4000 {
		t.Fatalf("第一名应拿大红利，实际 %d", dividend.Payouts["p1"])
	}
	if dividend.Payouts["p2"] != 1000 || dividend.Payouts["p3"] != 1000 {
		t.Fatalf("并列第二应平分小红利: %v", dividend.Payouts)
	}
}

func TestDistributeBonusNoHolders(t *testing.T) {
	g := newFixedGame("p1", "p2")
	dividend := g.DistributeBonus("Tower")
	if len(dividend.Payouts) != 0 {
		t.Fatalf("无人持股不应发红利: %v", dividend.Payouts)
	}
	if dividend := g.DistributeBonus("Ritz"); len(dividend.Payouts) != 0 {
		t.Fatal("未知品牌不应发红利")
	}
}

func TestIsGameEnd(t *testing.T) {
	g := newFixedGame("p1", "p2")
	if g.IsGameEnd() {
		t.Fatal("牌堆未空且无巨型酒店，不应终局")
	}

	g.pile = nil
	if !g.IsGameEnd() {
		t.Fatal("牌堆摸完应终局")
	}

	g2 := newFixedGame("p1", "p2")
	tower := g2.board.Hotel("Tower")
	tower.Activate()
	var tiles []string
	for i := 0; i < EndGameHotelSize; i++ {
		tiles = append(tiles, TileLabel(i/9+1, byte('A'+i%9)))
	}
	tower.Absorb(tiles)
	if !g2.IsGameEnd() {
		t.Fatal("酒店铺满棋盘应终局")
	}
}

func TestWinner(t *testing.T) {
	g := newFixedGame("p1", "p2", "p3")
	g.players[1].Cash = 9000
	if g.Winner() != "p2" {
		t.Fatalf("现金最多者应胜，实际 %s", g.Winner())
	}

	g.players[2].Cash = 9000
	if g.Winner() != "p2" {
		t.Fatalf("并列时应取先入座者，实际 %s", g.Winner())
	}
}

func TestStdGameRejectsTradeAndSell(t *testing.T) {
	g := newFixedGame("p1", "p2")
	result := g.TradeAndSellStocks(nil, nil, "p1")
	if result.Error == "" {
		t.Fatal("标准模式不应允许并购清算")
	}
}

func TestGetGameStats(t *testing.T) {
	g := newFixedGame("p1", "p2")
	tower := g.board.Hotel("Tower")
	tower.Activate()
	tower.Absorb([]string{"1A", "1B", "1C"}) // 股价 300
	g.players[0].Stocks["Tower"] = 4

	stats := g.GetGameStats("p1")
	if stats.Mode != ModeStandard {
		t.Fatalf("模式应为 %s，实际 %s", ModeStandard, stats.Mode)
	}
	if stats.CurrentPlayerID != "p1" {
		t.Fatalf("当前玩家应为 p1，实际 %s", stats.CurrentPlayerID)
	}
	if stats.PlayerPortfolio == nil {
		t.Fatal("应包含请求者的资产视图")
	}
	if want := InitialCash + 4*300; stats.PlayerPortfolio.TotalValue != want {
		t.Fatalf("资产应为 %d，实际 %d", want, stats.PlayerPortfolio.TotalValue)
	}

	if stats := g.GetGameStats("ghost"); stats.PlayerPortfolio != nil {
		t.Fatal("未知玩家不应有资产视图")
	}
}
