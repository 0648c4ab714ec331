package ws

import (
	"testing"

	"acquire/game"
	"acquire/utils"
)

func TestDecodeSettleItems(t *testing.T) {
	payload := []interface{}{
		map[string]interface{}{
			"company":        "American",
			"sellAmount":     float64(2),
			"exchangeAmount": float64(4),
		},
	}

	items, ok := decodeSettleItems(payload)
	if !ok || len(items) != 1 {
		t.Fatalf("解析失败: %v %v", items, ok)
	}
	if items[0].Company != "American" || items[0].SellAmount != 2 || items[0].ExchangeAmount != 4 {
		t.Fatalf("字段不一致: %+v", items[0])
	}

	if _, ok := decodeSettleItems("not-a-list"); ok {
		t.Fatal("非数组 payload 应解析失败")
	}
}

// 创建公司永远先挑高价档
func TestChooseCompanyPrefersPremium(t *testing.T) {
	g := game.NewStdGame([]string{"p1", "p2"})

	company := chooseCompanyForBot(g)
	if !utils.StringInSlice(company, []string{"Continental", "Imperial"}) {
		t.Fatalf("七家都可选时应挑高价档，实际 %s", company)
	}
}

func TestChooseStocksWithNoActiveHotel(t *testing.T) {
	g := game.NewStdGame([]string{"p1", "p2"})

	if stocks := chooseStocksForBot(g, "p1"); len(stocks) != 0 {
		t.Fatalf("没有已创建的酒店时不应买股: %v", stocks)
	}
}

func TestChooseTileReturnsOwnedTile(t *testing.T) {
	g := game.NewStdGame([]string{"p1", "p2"})

	tile := chooseTileForBot(g, "p1")
	p := g.PlayerSnapshot("p1")
	if !utils.StringInSlice(tile, p.Tiles) {
		t.Fatalf("选出的 tile %s 不在手牌 %v 里", tile, p.Tiles)
	}

	if tile := chooseTileForBot(g, "ghost"); tile != "" {
		t.Fatalf("未知玩家不应选出 tile: %s", tile)
	}
}

// 换股只在 1 股主并公司比卖 2 股被并购公司更值钱时划算
func TestShouldTradeInto(t *testing.T) {
	if !shouldTradeInto(500, 200) {
		t.Fatal("500 > 2x200，应换股")
	}
	if shouldTradeInto(400, 200) {
		t.Fatal("400 = 2x200，卖掉不亏，不应换股")
	}
	if shouldTradeInto(200, 500) {
		t.Fatal("主并公司更便宜时不应换股")
	}
	if shouldTradeInto(0, 200) {
		t.Fatal("主并公司股价未知时不应换股")
	}
}

func TestMinHelpers(t *testing.T) {
	if minOf(3, 1, 2) != 1 || minOf(5, 5, 5) != 5 {
		t.Fatal("minOf 结果错误")
	}
	if minTwo(2, 7) != 2 {
		t.Fatal("minTwo 结果错误")
	}
}
