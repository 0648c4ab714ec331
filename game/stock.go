package game

// 游戏常量：初始库存 25 股、初始资金 6000、每人 6 张手牌、
// 11 格以上的酒店不可被并购、41 格视为占满棋盘触发终局
const (
	TotalStocks      = 25
	InitialCash      = 6000
	HandSize         = 6
	SafeHotelSize    = 11
	EndGameHotelSize = 41
	TradeRate        = 2 // 并购清算时 2 股被并购公司换 1 股主并公司
)

type StockInfo struct {
	TileRange   [2]int
	Price       int
	BonusFirst  int
	BonusSecond int
}

// 三档通用价格配置，红利恒为股价的 10 倍 / 5 倍
var premiumStock = []StockInfo{
	{[2]int{0, 1}, 0, 0, 0},
	{[2]int{2, 2}, 400, 4000, 2000},
	{[2]int{3, 3}, 500, 5000, 2500},
	{[2]int{4, 4}, 600, 6000, 3000},
	{[2]int{5, 5}, 700, 7000, 3500},
	{[2]int{6, 10}, 800, 8000, 4000},
	{[2]int{11, 20}, 900, 9000, 4500},
	{[2]int{21, 30}, 1000, 10000, 5000},
	{[2]int{31, 40}, 1100, 11000, 5500},
	{[2]int{41, 1000}, 1200, 12000, 6000},
}

var mediumStock = []StockInfo{
	{[2]int{0, 1}, 0, 0, 0},
	{[2]int{2, 2}, 300, 3000, 1500},
	{[2]int{3, 3}, 400, 4000, 2000},
	{[2]int{4, 4}, 500, 5000, 2500},
	{[2]int{5, 5}, 600, 6000, 3000},
	{[2]int{6, 10}, 700, 7000, 3500},
	{[2]int{11, 20}, 800, 8000, 4000},
	{[2]int{21, 30}, 900, 9000, 4500},
	{[2]int{31, 40}, 1000, 10000, 5000},
	{[2]int{41, 1000}, 1100, 11000, 5500},
}

var lowStock = []StockInfo{
	{[2]int{0, 1}, 0, 0, 0},
	{[2]int{2, 2}, 200, 2000, 1000},
	{[2]int{3, 3}, 300, 3000, 1500},
	{[2]int{4, 4}, 400, 4000, 2000},
	{[2]int{5, 5}, 500, 5000, 2500},
	{[2]int{6, 10}, 600, 6000, 3000},
	{[2]int{11, 20}, 700, 7000, 3500},
	{[2]int{21, 30}, 800, 8000, 4000},
	{[2]int{31, 40}, 900, 9000, 4500},
	{[2]int{41, 1000}, 1000, 10000, 5000},
}

// HotelNames 七家固定品牌，顺序即棋盘上的固定顺序
var HotelNames = []string{
	"Tower", "Sackson",
	"American", "Festival", "Worldwide",
	"Continental", "Imperial",
}

// 品牌 -> 价格档位
var stockData = map[string][]StockInfo{
	"Continental": premiumStock,
	"Imperial":    premiumStock,

	"American":  mediumStock,
	"Festival":  mediumStock,
	"Worldwide": mediumStock,

	"Tower":   lowStock,
	"Sackson": lowStock,
}

// HotelColors 前端着色用的品牌颜色
var HotelColors = map[string]string{
	"Tower":       "yellow",
	"Sackson":     "red",
	"American":    "blue",
	"Festival":    "green",
	"Worldwide":   "brown",
	"Continental": "cyan",
	"Imperial":    "pink",
}

// GetStockInfo 按品牌和规模查档位，未知品牌返回 nil
func GetStockInfo(hotel string, tileCount int) *StockInfo {
	for _, info := range stockData[hotel] {
		if tileCount >= info.TileRange[0] && tileCount <= info.TileRange[1] {
			return &info
		}
	}
	return nil
}

// PriceOf 当前股价，未知品牌或规模为 0
func PriceOf(hotel string, tileCount int) int {
	if info := GetStockInfo(hotel, tileCount); info != nil {
		return info.Price
	}
	return 0
}
