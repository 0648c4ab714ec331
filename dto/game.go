package dto

type RoomStatus string

const (
	RoomStatusWaiting          RoomStatus = "waiting"
	RoomStatusSetTile          RoomStatus = "setTile"
	RoomStatusCreateCompany    RoomStatus = "createCompany"
	RoomStatusBuyStock         RoomStatus = "buyStock"
	RoomStatusMergingSelection RoomStatus = "mergingSelection"
	RoomStatusMergingSettle    RoomStatus = "mergingSettle"
	RoomStatusGameOver         RoomStatus = "gameOver"
)

// 放置 tile 的四种结果类型
type PlaceType string

const (
	PlaceTypeIndependent PlaceType = "Independent"
	PlaceTypeDependent   PlaceType = "Dependent"
	PlaceTypeBuild       PlaceType = "Build"
	PlaceTypeMerge       PlaceType = "Merge"
)

type MergeType string

const (
	MergeTypeSelective MergeType = "SelectiveMerge"
	MergeTypeAuto      MergeType = "AutoMerge"
)

// PlacementResult 是 placeTile 的返回结构。Status 为 false 表示非法操作（玩家
// 手里没有这张 tile，或 tile 不在棋盘范围内），其余字段仅在 Status 为 true 时有效。
type PlacementResult struct {
	Status         bool          `json:"status"`
	Tile           string        `json:"tile,omitempty"`
	Type           PlaceType     `json:"type,omitempty"`
	InActiveHotels []string      `json:"inActiveHotels,omitempty"`
	MergeDetails   *MergeDetails `json:"mergeDetails,omitempty"`
}

// HotelBrief 合并发生时各受影响酒店的快照
type HotelBrief struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	BaseTile string `json:"baseTile"`
}

type MergeDetails struct {
	TypeOfMerge MergeType    `json:"typeofMerge"`
	Acquirer    string       `json:"acquirer,omitempty"`
	Target      []string     `json:"target,omitempty"`
	Hotels      []HotelBrief `json:"hotelsAffected"`
}

type Hotel struct {
	Name            string   `json:"name"`
	Tiles           []string `json:"tiles"`
	Color           string   `json:"color"`
	StocksAvailable int      `json:"stocksAvailable"`
	StockPrice      int      `json:"stockPrice"`
	BaseTile        string   `json:"baseTile,omitempty"`
}

// FoundResult 是 foundHotel 的返回结构。StockAlloted 表示创建者是否拿到了
// 创建奖励股（库存为 0 时拿不到，调用方必须检查）。
type FoundResult struct {
	Hotel        *Hotel `json:"hotel,omitempty"`
	StockAlloted bool   `json:"stockAlloted"`
	Error        string `json:"error,omitempty"`
}

type Player struct {
	PlayerID string         `json:"playerId"`
	Cash     int            `json:"cash"`
	Tiles    []string       `json:"tiles"`
	Stocks   map[string]int `json:"stocks"`
}

type PlayerResult struct {
	Player *Player `json:"player,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type Board struct {
	IndependentTiles []string `json:"independentTiles"`
	ActiveHotels     []Hotel  `json:"activeHotels"`
	InActiveHotels   []string `json:"inActiveHotels"`
	MergerTile       string   `json:"mergerTile,omitempty"`
}

type TurnStatus struct {
	Status string `json:"status"`
}

// Portfolio 玩家视角的自家资产：现金 + 持股市值
type Portfolio struct {
	Player     *Player `json:"player"`
	TotalValue int     `json:"totalValue"`
}

type GameStats struct {
	Board           *Board     `json:"board"`
	PlayersID       []string   `json:"playersId"`
	CurrentPlayerID string     `json:"currentPlayerId"`
	IsGameEnd       bool       `json:"isGameEnd"`
	PlayerPortfolio *Portfolio `json:"playerPortfolio,omitempty"`
	Mode            string     `json:"mode"`
}

// BuyStockRequest 单笔购股请求，每笔独立结算，互不影响
type BuyStockRequest struct {
	Hotel string `json:"hotel"`
	Count int    `json:"count"`
}

// Dividend 一家被并购/清算酒店的红利发放结果
type Dividend struct {
	Hotel   string         `json:"hotel"`
	Payouts map[string]int `json:"payouts"`
}

// MergingSettleItem 合并清算阶段玩家提交的单项：卖出多少、换多少
type MergingSettleItem struct {
	Company        string  `json:"company"`
	SellAmount     float64 `json:"sellAmount"`
	ExchangeAmount float64 `json:"exchangeAmount"`
}
