package ws

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"acquire/dto"
	"acquire/game"
	"acquire/logger"
	"acquire/repository"
	"acquire/utils"
)

// 机器人出手前的思考间隔，给前端留动画时间
const botThinkDelay = 2 * time.Second

func (h *Hub) handleAddBotMessage(roomID, playerID string, msgMap map[string]interface{}) {
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		logger.L().Warnf("❌ 获取房间信息失败: %v", err)
		return
	}
	if roomInfo.RoomStatus {
		logger.L().Warn("❌ 对局已开始，不能再加机器人")
		return
	}

	botID := "bot_" + uuid.NewString()[:6]
	conn := &VirtualConn{PlayerID: botID, RoomID: roomID, hub: h}
	ok, maxPlayers := h.validateAndJoinRoom(roomID, botID, conn, true)
	if !ok {
		logger.L().Warnf("❌ 机器人入座失败，房间[%s]已满", roomID)
		return
	}
	logger.L().Infof("🤖 机器人 %s 加入房间 %s", botID, roomID)

	if h.roomPlayerCount(roomID) == maxPlayers {
		if err := h.startGame(roomID); err != nil {
			logger.L().Errorf("❌ 开局失败: %v", err)
		}
	}
	h.broadcastToRoom(roomID)
}

func (h *Hub) isBot(roomID, playerID string) bool {
	if !strings.HasPrefix(playerID, "bot_") {
		return false
	}
	for _, pc := range h.RoomPlayers(roomID) {
		if pc.PlayerID == playerID {
			return pc.IsBot
		}
	}
	return false
}

// scheduleBot 每个房间同一时刻只允许一个机器人协程在跑
func (h *Hub) scheduleBot(roomID string) {
	h.botMu.Lock()
	if h.botBusy[roomID] {
		h.botMu.Unlock()
		return
	}
	h.botBusy[roomID] = true
	h.botMu.Unlock()

	go func() {
		time.Sleep(botThinkDelay)

		// 机器人行动和真人消息走同一把房间锁，串行改局面
		lock := h.roomLocker(roomID)
		lock.Lock()
		defer lock.Unlock()

		acted := h.maybeRunBot(roomID)

		// 广播会再触发一次调度，先解除占用让下一个机器人能排上
		h.botMu.Lock()
		delete(h.botBusy, roomID)
		h.botMu.Unlock()

		if acted {
			h.broadcastToRoom(roomID)
		}
	}()
}

// maybeRunBot 轮到机器人就替它走一步，借用和真人同一套 handler 走校验
func (h *Hub) maybeRunBot(roomID string) bool {
	g, ok := h.manager.Get(roomID)
	if !ok {
		return false
	}
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		return false
	}
	status := roomInfo.GameStatus

	var actorID string
	var msg map[string]interface{}

	switch status {
	case dto.RoomStatusMergingSettle:
		merger, ok := g.(*game.Merger)
		if !ok {
			return false
		}
		for _, pid := range merger.PendingPlayers() {
			if h.isBot(roomID, pid) {
				actorID = pid
				msg = map[string]interface{}{
					"type":    "merging_settle",
					"payload": chooseSettleForBot(g, merger, pid),
				}
				break
			}
		}

	case dto.RoomStatusSetTile:
		current := g.CurrentPlayer()
		if !h.isBot(roomID, current) {
			return false
		}
		tile := chooseTileForBot(g, current)
		if tile == "" {
			return false
		}
		actorID = current
		msg = map[string]interface{}{"type": "place_tile", "payload": tile}

	case dto.RoomStatusCreateCompany:
		current := g.CurrentPlayer()
		if !h.isBot(roomID, current) {
			return false
		}
		company := chooseCompanyForBot(g)
		if company == "" {
			return false
		}
		actorID = current
		msg = map[string]interface{}{"type": "create_company", "payload": company}

	case dto.RoomStatusBuyStock:
		current := g.CurrentPlayer()
		if !h.isBot(roomID, current) {
			return false
		}
		actorID = current
		stocks := chooseStocksForBot(g, current)
		if len(stocks) == 0 {
			msg = map[string]interface{}{"type": "end_turn"}
		} else {
			msg = map[string]interface{}{"type": "buy_stock", "payload": stocks}
		}

	case dto.RoomStatusMergingSelection:
		current := g.CurrentPlayer()
		if !h.isBot(roomID, current) {
			return false
		}
		merger, ok := g.(*game.Merger)
		if !ok {
			return false
		}
		actorID = current
		msg = map[string]interface{}{
			"type":    "merging_selection",
			"payload": chooseSelectionForBot(g, merger, current),
		}

	default:
		return false
	}

	if actorID == "" || msg == nil {
		return false
	}

	handler, found := h.handlers()[msg["type"].(string)]
	if !found {
		return false
	}
	logger.L().Infof("🤖 机器人 %s 执行 %s", actorID, msg["type"])
	handler(roomID, actorID, msg)
	return true
}

// chooseTileForBot 优先贴着已落子的 tile 放，形成公司或扩建；没有就随机
func chooseTileForBot(g game.Play, playerID string) string {
	p := g.PlayerSnapshot(playerID)
	if p == nil || len(p.Tiles) == 0 {
		return ""
	}

	board := g.GetBoard()
	placed := make(map[string]bool)
	for _, t := range board.IndependentTiles {
		placed[t] = true
	}
	for _, hotel := range board.ActiveHotels {
		for _, t := range hotel.Tiles {
			placed[t] = true
		}
	}

	for _, tile := range p.Tiles {
		for _, n := range game.AdjacentOf(tile) {
			if placed[n] {
				return tile
			}
		}
	}
	return p.Tiles[rand.Intn(len(p.Tiles))]
}

// chooseCompanyForBot 创建公司时按档位挑：高价档 > 中价档 > 低价档
func chooseCompanyForBot(g game.Play) string {
	inactive := g.GetBoard().InActiveHotels
	if len(inactive) == 0 {
		return ""
	}

	priority1 := []string{"Continental", "Imperial"}
	priority2 := []string{"American", "Festival", "Worldwide"}
	var p1, p2, p3 []string
	for _, name := range inactive {
		switch {
		case utils.StringInSlice(name, priority1):
			p1 = append(p1, name)
		case utils.StringInSlice(name, priority2):
			p2 = append(p2, name)
		default:
			p3 = append(p3, name)
		}
	}

	if len(p1) > 0 {
		return p1[rand.Intn(len(p1))]
	}
	if len(p2) > 0 {
		return p2[rand.Intn(len(p2))]
	}
	return p3[rand.Intn(len(p3))]
}

// chooseStocksForBot 从便宜到贵贪心买，单回合最多 3 股，单家持仓不超过 13
func chooseStocksForBot(g game.Play, playerID string) map[string]interface{} {
	p := g.PlayerSnapshot(playerID)
	if p == nil {
		return nil
	}
	money := p.Cash

	type candidate struct {
		Name   string
		Price  int
		Remain int
	}
	var options []candidate
	for _, hotel := range g.GetBoard().ActiveHotels {
		if hotel.StocksAvailable > 0 && hotel.StockPrice <= money && p.Stocks[hotel.Name] < 13 {
			options = append(options, candidate{
				Name:   hotel.Name,
				Price:  hotel.StockPrice,
				Remain: hotel.StocksAvailable,
			})
		}
	}
	if len(options) == 0 {
		return nil
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].Price < options[j].Price
	})

	result := make(map[string]interface{})
	bought := 0
	for _, opt := range options {
		canBuy := minOf(3-bought, opt.Remain, money/opt.Price)
		if canBuy <= 0 {
			continue
		}
		result[opt.Name] = float64(canBuy)
		money -= canBuy * opt.Price
		bought += canBuy
		if bought >= 3 || money <= 0 {
			break
		}
	}
	return result
}

// chooseSelectionForBot 留下自己持股占比最高的那家
func chooseSelectionForBot(g game.Play, merger *game.Merger, playerID string) string {
	p := g.PlayerSnapshot(playerID)
	details := merger.Details()

	best := ""
	max := -1
	for _, brief := range details.Hotels {
		count := 0
		if p != nil {
			count = p.Stocks[brief.Name]
		}
		if count > max {
			max = count
			best = brief.Name
		}
	}
	return best
}

// chooseSettleForBot 被并购公司股价够高就尽量 2 换 1，其余全卖
func chooseSettleForBot(g game.Play, merger *game.Merger, playerID string) []interface{} {
	p := g.PlayerSnapshot(playerID)
	if p == nil {
		return nil
	}
	details := merger.Details()

	var acquirerPrice, acquirerRemain int
	hotelByName := make(map[string]*dto.Hotel)
	for i := range g.GetBoard().ActiveHotels {
		hotel := &g.GetBoard().ActiveHotels[i]
		hotelByName[hotel.Name] = hotel
	}
	if acq, ok := hotelByName[details.Acquirer]; ok {
		acquirerPrice = acq.StockPrice
		acquirerRemain = acq.StocksAvailable
	}

	var result []interface{}
	for _, targetName := range details.Target {
		count := p.Stocks[targetName]
		if count == 0 {
			continue
		}

		targetPrice := 0
		if t, ok := hotelByName[targetName]; ok {
			targetPrice = t.StockPrice
		}

		exchange := 0
		sell := count
		if shouldTradeInto(acquirerPrice, targetPrice) {
			maxEven := count - count%2
			exchange = minTwo(maxEven, acquirerRemain*2)
			sell = count - exchange
		}

		result = append(result, map[string]interface{}{
			"company":        targetName,
			"sellAmount":     float64(sell),
			"exchangeAmount": float64(exchange),
		})
	}
	return result
}

// shouldTradeInto 2 股被并购公司换 1 股主并公司：卖掉那 2 股能拿
// 2 x targetPrice 现金，所以只有主并公司 1 股比这更值钱时才值得换
func shouldTradeInto(acquirerPrice, targetPrice int) bool {
	return acquirerPrice > 0 && acquirerPrice > 2*targetPrice
}

func minOf(a, b, c int) int {
	return minTwo(a, minTwo(b, c))
}

func minTwo(a, b int) int {
	if a < b {
		return a
	}
	return b
}
