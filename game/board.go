package game

import (
	"fmt"

	"acquire/dto"
	"acquire/utils"
)

// Board 持有固定的 7 家酒店和已放置但未归属任何酒店的独立 tile。
// 不变式：一张已放置的 tile 要么在 independentTiles 里，要么恰好属于一家酒店。
type Board struct {
	hotels           []*Hotel
	independentTiles []string
	mergerTile       string
}

func NewBoard() *Board {
	hotels := make([]*Hotel, 0, len(HotelNames))
	for _, name := range HotelNames {
		hotels = append(hotels, NewHotel(name))
	}
	return &Board{hotels: hotels}
}

// Hotel 按品牌名取酒店，未知品牌返回 nil
func (b *Board) Hotel(name string) *Hotel {
	for _, h := range b.hotels {
		if h.Name == name {
			return h
		}
	}
	return nil
}

func (b *Board) Hotels() []*Hotel {
	return b.hotels
}

func (b *Board) ActiveHotels() []*Hotel {
	var active []*Hotel
	for _, h := range b.hotels {
		if h.Active {
			active = append(active, h)
		}
	}
	return active
}

func (b *Board) InactiveHotels() []*Hotel {
	var inactive []*Hotel
	for _, h := range b.hotels {
		if !h.Active {
			inactive = append(inactive, h)
		}
	}
	return inactive
}

func (b *Board) MergerTile() string {
	return b.mergerTile
}

func (b *Board) isIndependent(tile string) bool {
	for _, t := range b.independentTiles {
		if t == tile {
			return true
		}
	}
	return false
}

// hotelOwning 返回持有该 tile 的酒店，独立 tile 或未放置时为 nil
func (b *Board) hotelOwning(tile string) *Hotel {
	for _, h := range b.hotels {
		for _, t := range h.Tiles {
			if t == tile {
				return h
			}
		}
	}
	return nil
}

// GetAdjacentOf 纯邻接计算，不看棋盘状态
func (b *Board) GetAdjacentOf(tile string) []string {
	return AdjacentOf(tile)
}

// GetAdjacentTilesOf 只保留已放置（独立或酒店所属）的邻接 tile
func (b *Board) GetAdjacentTilesOf(tile string) []string {
	var placed []string
	for _, adj := range AdjacentOf(tile) {
		if b.isIndependent(adj) || b.hotelOwning(adj) != nil {
			placed = append(placed, adj)
		}
	}
	return placed
}

// connectedIndependents 从 tile 出发沿独立 tile 做 BFS，返回连通的独立 tile
// 集合（不含 tile 本身）。迭代 + visited 集合，链条再长也不会爆栈。
func (b *Board) connectedIndependents(tile string) []string {
	visited := map[string]bool{tile: true}
	queue := []string{tile}
	var connected []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adj := range AdjacentOf(current) {
			if visited[adj] {
				continue
			}
			visited[adj] = true
			if b.isIndependent(adj) {
				connected = append(connected, adj)
				queue = append(queue, adj)
			}
		}
	}
	return connected
}

// adjacentHotels tile 四周接触到的不同酒店，按棋盘固定顺序去重
func (b *Board) adjacentHotels(tile string) []*Hotel {
	seen := make(map[string]bool)
	for _, adj := range AdjacentOf(tile) {
		if h := b.hotelOwning(adj); h != nil {
			seen[h.Name] = true
		}
	}
	var hotels []*Hotel
	for _, h := range b.hotels {
		if seen[h.Name] {
			hotels = append(hotels, h)
		}
	}
	return hotels
}

// GetPlaceTileType 判定一次放置会触发什么规则：
// 邻接 >=2 家酒店是并购，恰好 1 家是扩建，邻接独立 tile 且还有未创建的
// 酒店是创建，否则就是独立放置。创建场景不动棋盘，等调用方选定品牌。
func (b *Board) GetPlaceTileType(tile string) dto.PlacementResult {
	if _, _, ok := ParseTile(tile); !ok {
		return dto.PlacementResult{Status: false}
	}

	adjHotels := b.adjacentHotels(tile)
	connected := b.connectedIndependents(tile)

	if len(adjHotels) >= 2 {
		details := FindMergeType(adjHotels)
		b.mergerTile = tile
		return dto.PlacementResult{
			Status:       true,
			Tile:         tile,
			Type:         dto.PlaceTypeMerge,
			MergeDetails: details,
		}
	}

	if len(adjHotels) == 1 {
		b.placeDependent(tile, adjHotels[0])
		return dto.PlacementResult{
			Status: true,
			Tile:   tile,
			Type:   dto.PlaceTypeDependent,
		}
	}

	if len(connected) > 0 {
		if inactive := b.InactiveHotels(); len(inactive) > 0 {
			names := make([]string, 0, len(inactive))
			for _, h := range inactive {
				names = append(names, h.Name)
			}
			return dto.PlacementResult{
				Status:         true,
				Tile:           tile,
				Type:           dto.PlaceTypeBuild,
				InActiveHotels: names,
			}
		}
	}

	b.independentTiles = append(b.independentTiles, tile)
	return dto.PlacementResult{
		Status: true,
		Tile:   tile,
		Type:   dto.PlaceTypeIndependent,
	}
}

// placeDependent tile 和与它连通的独立 tile 一起并入邻接的那家酒店
func (b *Board) placeDependent(tile string, hotel *Hotel) {
	connected := b.connectedIndependents(tile)
	b.removeIndependents(connected)
	hotel.Absorb(append([]string{tile}, connected...))
}

// BuildHotel 在 tile 处创建指定酒店：激活、扣 1 股创建奖励（库存可能为 0，
// 此时 StockAlloted 为 false）、把连通的独立 tile 全部并入。
func (b *Board) BuildHotel(tile, hotelName string) dto.FoundResult {
	hotel := b.Hotel(hotelName)
	if hotel == nil {
		return dto.FoundResult{Error: fmt.Sprintf("酒店[%s]不存在", hotelName)}
	}
	if hotel.Active {
		return dto.FoundResult{Error: fmt.Sprintf("酒店[%s]已经创建过了", hotelName)}
	}

	connected := b.connectedIndependents(tile)
	b.removeIndependents(connected)

	hotel.Activate()
	alloted := hotel.TakeStocks(1)
	hotel.Absorb(append([]string{tile}, connected...))

	return dto.FoundResult{Hotel: hotel.Snapshot(), StockAlloted: alloted}
}

// AbsorbMerge 并购落定：被并购酒店的 tile、并购触发 tile、与触发 tile 连通的
// 独立 tile 依次并入主并公司，被并购酒店归零回到未创建状态。
func (b *Board) AbsorbMerge(acquirerName string, targets []string) {
	acquirer := b.Hotel(acquirerName)
	if acquirer == nil {
		return
	}

	for _, name := range targets {
		target := b.Hotel(name)
		if target == nil || target == acquirer {
			continue
		}
		acquirer.Absorb(target.Tiles)
		target.Reset()
	}

	if b.mergerTile != "" {
		connected := b.connectedIndependents(b.mergerTile)
		b.removeIndependents(connected)
		acquirer.Absorb(append([]string{b.mergerTile}, connected...))
		b.mergerTile = ""
	}
}

func (b *Board) removeIndependents(tiles []string) {
	for _, tile := range tiles {
		for i, t := range b.independentTiles {
			if t == tile {
				b.independentTiles = utils.RemoveAtIndex(b.independentTiles, i)
				break
			}
		}
	}
}

func (b *Board) Snapshot() *dto.Board {
	independent := make([]string, len(b.independentTiles))
	copy(independent, b.independentTiles)

	var active []dto.Hotel
	var inactive []string
	for _, h := range b.hotels {
		if h.Active {
			active = append(active, *h.Snapshot())
		} else {
			inactive = append(inactive, h.Name)
		}
	}

	return &dto.Board{
		IndependentTiles: independent,
		ActiveHotels:     active,
		InActiveHotels:   inactive,
		MergerTile:       b.mergerTile,
	}
}
