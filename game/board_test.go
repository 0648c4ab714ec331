package game

import (
	"testing"

	"acquire/dto"
)

// activateHotel 测试辅助：直接把一家酒店放到指定 tile 上
func activateHotel(b *Board, name string, tiles ...string) *Hotel {
	h := b.Hotel(name)
	h.Activate()
	h.Absorb(tiles)
	return h
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func TestPlaceIndependent(t *testing.T) {
	b := NewBoard()

	result := b.GetPlaceTileType("5E")
	if !result.Status || result.Type != dto.PlaceTypeIndependent {
		t.Fatalf("孤立 tile 应判定为独立放置，实际 %+v", result)
	}
	if !b.isIndependent("5E") {
		t.Fatal("独立 tile 应进入 independentTiles")
	}
}

func TestPlaceBuildDoesNotMutate(t *testing.T) {
	b := NewBoard()
	b.GetPlaceTileType("5E")

	result := b.GetPlaceTileType("5F")
	if result.Type != dto.PlaceTypeBuild {
		t.Fatalf("邻接独立 tile 且有未创建酒店，应判定为创建，实际 %s", result.Type)
	}
	if len(result.InActiveHotels) != 7 {
		t.Fatalf("七家酒店都未创建，候选应为 7 家，实际 %d", len(result.InActiveHotels))
	}

	// 创建判定不落子，等玩家选定品牌
	if b.isIndependent("5F") {
		t.Fatal("创建判定不应把 tile 放进 independentTiles")
	}
	snap := b.Snapshot()
	if len(snap.IndependentTiles) != 1 || snap.IndependentTiles[0] != "5E" {
		t.Fatalf("棋盘不应被创建判定改动，实际 %v", snap.IndependentTiles)
	}
}

func TestPlaceIndependentWhenNoHotelLeft(t *testing.T) {
	b := NewBoard()
	for _, name := range HotelNames {
		activateHotel(b, name)
	}
	b.GetPlaceTileType("5E")

	// 没有可创建的酒店时退化为独立放置
	result := b.GetPlaceTileType("5F")
	if result.Type != dto.PlaceTypeIndependent {
		t.Fatalf("无未创建酒店时应判定为独立放置，实际 %s", result.Type)
	}
}

func TestBuildHotelAbsorbsConnected(t *testing.T) {
	b := NewBoard()
	b.GetPlaceTileType("5E")
	b.GetPlaceTileType("4E")

	result := b.BuildHotel("5F", "Tower")
	if result.Error != "" {
		t.Fatalf("创建失败: %s", result.Error)
	}
	if !result.StockAlloted {
		t.Fatal("库存充足时应发创建奖励股")
	}

	tower := b.Hotel("Tower")
	if !tower.Active || tower.Size() != 3 {
		t.Fatalf("Tower 应持有 3 张 tile，实际 %d", tower.Size())
	}
	if tower.BaseTile() != "5F" {
		t.Fatalf("基准 tile 应为创建点 5F，实际 %s", tower.BaseTile())
	}
	if tower.StocksAvailable != TotalStocks-1 {
		t.Fatalf("库存应扣 1 股，实际 %d", tower.StocksAvailable)
	}
	if len(b.Snapshot().IndependentTiles) != 0 {
		t.Fatal("连通的独立 tile 应全部并入酒店")
	}
}

func TestBuildHotelErrors(t *testing.T) {
	b := NewBoard()
	if result := b.BuildHotel("5E", "Ritz"); result.Error == "" {
		t.Fatal("未知品牌应报错")
	}

	activateHotel(b, "Tower", "1A")
	if result := b.BuildHotel("5E", "Tower"); result.Error == "" {
		t.Fatal("重复创建应报错")
	}
}

func TestPlaceDependent(t *testing.T) {
	b := NewBoard()
	activateHotel(b, "Tower", "1A", "1B")
	b.GetPlaceTileType("2C") // 独立 tile，与扩建点连通

	result := b.GetPlaceTileType("1C")
	if result.Type != dto.PlaceTypeDependent {
		t.Fatalf("邻接单家酒店应判定为扩建，实际 %s", result.Type)
	}

	tower := b.Hotel("Tower")
	if tower.Size() != 4 {
		t.Fatalf("扩建应带上连通的独立 tile，期望 4 张实际 %d", tower.Size())
	}
	if len(b.Snapshot().IndependentTiles) != 0 {
		t.Fatal("被并入的独立 tile 不应残留")
	}
}

func TestPlaceMergeSelective(t *testing.T) {
	b := NewBoard()
	activateHotel(b, "Tower", "1B", "1A")
	activateHotel(b, "American", "1D", "1E")

	result := b.GetPlaceTileType("1C")
	if result.Type != dto.PlaceTypeMerge {
		t.Fatalf("邻接两家酒店应判定为并购，实际 %s", result.Type)
	}
	details := result.MergeDetails
	if details.TypeOfMerge != dto.MergeTypeSelective {
		t.Fatalf("规模相同应为选择式并购，实际 %s", details.TypeOfMerge)
	}
	if details.Acquirer != "" {
		t.Fatalf("选择式并购不应预设主并公司，实际 %s", details.Acquirer)
	}
	if b.MergerTile() != "1C" {
		t.Fatalf("并购触发 tile 应被记录，实际 %q", b.MergerTile())
	}
}

func TestPlaceMergeAuto(t *testing.T) {
	b := NewBoard()
	activateHotel(b, "Tower", "1B", "1A", "2B")
	activateHotel(b, "American", "1D", "1E")

	result := b.GetPlaceTileType("1C")
	details := result.MergeDetails
	if details.TypeOfMerge != dto.MergeTypeAuto {
		t.Fatalf("规模不同应为自动并购，实际 %s", details.TypeOfMerge)
	}
	if details.Acquirer != "Tower" {
		t.Fatalf("规模最大者应为主并公司，实际 %s", details.Acquirer)
	}
	if len(details.Target) != 1 || details.Target[0] != "American" {
		t.Fatalf("被并购目标应为 American，实际 %v", details.Target)
	}
}

func TestAbsorbMerge(t *testing.T) {
	b := NewBoard()
	activateHotel(b, "Tower", "1B", "1A", "2A")
	activateHotel(b, "American", "1D", "1E")
	b.GetPlaceTileType("2C") // 独立 tile，与并购触发点连通
	b.GetPlaceTileType("1C") // 触发并购

	b.AbsorbMerge("Tower", []string{"American"})

	tower := b.Hotel("Tower")
	american := b.Hotel("American")
	if tower.Size() != 7 {
		t.Fatalf("主并公司应吃下全部 tile，期望 7 张实际 %d", tower.Size())
	}
	if american.Active || american.Size() != 0 {
		t.Fatal("被并购酒店应回到未创建状态")
	}
	if b.MergerTile() != "" {
		t.Fatal("并购收尾后触发 tile 应清空")
	}
	if len(b.Snapshot().IndependentTiles) != 0 {
		t.Fatal("与触发点连通的独立 tile 应并入主并公司")
	}
}

// 一张 tile 任何时刻只能属于一个归属
func TestTileExclusivity(t *testing.T) {
	b := NewBoard()
	b.GetPlaceTileType("5E")
	b.BuildHotel("5F", "Tower")
	activateHotel(b, "American", "8A", "8B")
	b.GetPlaceTileType("3C")

	snap := b.Snapshot()
	seen := make(map[string]string)
	for _, tile := range snap.IndependentTiles {
		seen[tile] = "independent"
	}
	for _, hotel := range snap.ActiveHotels {
		for _, tile := range hotel.Tiles {
			if owner, dup := seen[tile]; dup {
				t.Fatalf("tile %s 同时属于 %s 和 %s", tile, owner, hotel.Name)
			}
			seen[tile] = hotel.Name
		}
	}
}

func TestGetAdjacentTilesOf(t *testing.T) {
	b := NewBoard()
	b.GetPlaceTileType("5E")
	activateHotel(b, "Tower", "6F")

	placed := b.GetAdjacentTilesOf("5F")
	if len(placed) != 2 || !containsString(placed, "5E") || !containsString(placed, "6F") {
		t.Fatalf("只应返回已放置的邻接 tile，实际 %v", placed)
	}
}
