package game

import "acquire/dto"

// Hotel 一条连锁：持有的 tile（按并入顺序）、剩余股票库存、是否已创建。
// 外部（Board/Game）只能通过这里的方法改它的状态。
type Hotel struct {
	Name            string
	Tiles           []string
	StocksAvailable int
	Active          bool
}

func NewHotel(name string) *Hotel {
	return &Hotel{
		Name:            name,
		StocksAvailable: TotalStocks,
	}
}

func (h *Hotel) Size() int {
	return len(h.Tiles)
}

// BaseTile 创建时的第一张 tile
func (h *Hotel) BaseTile() string {
	if len(h.Tiles) == 0 {
		return ""
	}
	return h.Tiles[0]
}

func (h *Hotel) StockPrice() int {
	return PriceOf(h.Name, h.Size())
}

func (h *Hotel) PrimaryBonus() int {
	if info := GetStockInfo(h.Name, h.Size()); info != nil {
		return info.BonusFirst
	}
	return 0
}

func (h *Hotel) SecondaryBonus() int {
	if info := GetStockInfo(h.Name, h.Size()); info != nil {
		return info.BonusSecond
	}
	return 0
}

// IsSafe 规模达到 11 格后不可再被并购
func (h *Hotel) IsSafe() bool {
	return h.Size() >= SafeHotelSize
}

func (h *Hotel) Activate() {
	h.Active = true
}

// Reset 被并购后回到未创建状态，tile 已全部让渡给主并公司
func (h *Hotel) Reset() {
	h.Tiles = nil
	h.Active = false
}

// Absorb 按传入顺序并入 tile，保持并入顺序
func (h *Hotel) Absorb(tiles []string) {
	h.Tiles = append(h.Tiles, tiles...)
}

// TakeStocks 从库存扣 n 股，库存不足时不扣并返回 false
func (h *Hotel) TakeStocks(n int) bool {
	if n < 0 || h.StocksAvailable < n {
		return false
	}
	h.StocksAvailable -= n
	return true
}

// ReturnStocks 股票卖回库存
func (h *Hotel) ReturnStocks(n int) {
	if n > 0 {
		h.StocksAvailable += n
	}
}

func (h *Hotel) Snapshot() *dto.Hotel {
	tiles := make([]string, len(h.Tiles))
	copy(tiles, h.Tiles)
	return &dto.Hotel{
		Name:            h.Name,
		Tiles:           tiles,
		Color:           HotelColors[h.Name],
		StocksAvailable: h.StocksAvailable,
		StockPrice:      h.StockPrice(),
		BaseTile:        h.BaseTile(),
	}
}
