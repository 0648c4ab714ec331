package ws

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"acquire/dto"
	"acquire/game"
	"acquire/logger"
	"acquire/repository"
	"acquire/utils"
)

// startGame 人齐开局：按入座顺序建牌局、房间状态切到放 tile 阶段
func (h *Hub) startGame(roomID string) error {
	if _, ok := h.manager.Get(roomID); ok {
		return nil // 重连触发的重复开局，忽略
	}

	var playerIDs []string
	for _, pc := range h.RoomPlayers(roomID) {
		playerIDs = append(playerIDs, pc.PlayerID)
	}
	if _, err := h.manager.Create(roomID, playerIDs); err != nil {
		return err
	}

	if err := SetRoomStatus(repository.Rdb, roomID, true); err != nil {
		return err
	}
	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusSetTile); err != nil {
		return err
	}
	logger.L().Infof("✅ 房间 %s 开局，玩家: %v", roomID, playerIDs)
	return nil
}

// guardTurn 校验存在对局、轮到该玩家、房间处于指定阶段
func (h *Hub) guardTurn(roomID, playerID string, status dto.RoomStatus) (game.Play, bool) {
	g, ok := h.manager.Get(roomID)
	if !ok {
		logger.L().Warnf("❌ 房间[%s]没有进行中的对局", roomID)
		return nil, false
	}
	if g.CurrentPlayer() != playerID {
		logger.L().Warnf("❌ 不是玩家[%s]的回合", playerID)
		return nil, false
	}
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		logger.L().Warnf("❌ 获取房间信息失败: %v", err)
		return nil, false
	}
	if roomInfo.GameStatus != status {
		logger.L().Warnf("❌ 房间[%s]当前阶段是 %s，不是 %s", roomID, roomInfo.GameStatus, status)
		return nil, false
	}
	return g, true
}

func (h *Hub) handlePlaceTileMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.guardTurn(roomID, playerID, dto.RoomStatusSetTile)
	if !ok {
		return
	}
	tileKey, ok := msgMap["payload"].(string)
	if !ok {
		logger.L().Warn("无效的 payload")
		return
	}
	if err := h.doPlaceTile(roomID, playerID, g, tileKey); err != nil {
		logger.L().Warnf("放置棋子失败: %v", err)
	}
}

// doPlaceTile 放下一张 tile 并按判定结果推进阶段：
// 独立/扩建直接进入买股阶段，创建等玩家选品牌，并购切换到并购模式。
func (h *Hub) doPlaceTile(roomID, playerID string, g game.Play, tileKey string) error {
	result := g.PlaceTile(tileKey)
	if !result.Status {
		return fmt.Errorf("玩家[%s]不能放置 %s", playerID, tileKey)
	}
	if err := SetLastTileKey(repository.Rdb, repository.Ctx, roomID, tileKey); err != nil {
		return err
	}
	logger.L().Infof("✅ 玩家 %s 放置棋子 %s，判定为 %s", playerID, tileKey, result.Type)

	switch result.Type {
	case dto.PlaceTypeIndependent, dto.PlaceTypeDependent:
		return h.afterPlacement(roomID, g)

	case dto.PlaceTypeBuild:
		return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusCreateCompany)

	case dto.PlaceTypeMerge:
		std, ok := g.(*game.StdGame)
		if !ok {
			return fmt.Errorf("房间[%s]已处于并购模式", roomID)
		}
		merger := game.NewMerger(std, result.MergeDetails)
		h.manager.Update(roomID, merger)

		if result.MergeDetails.TypeOfMerge == dto.MergeTypeSelective {
			return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusMergingSelection)
		}
		if merger.IsResolved() {
			// 没有需要清算的持股玩家，当场收尾
			return h.completeMerger(roomID, merger)
		}
		return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusMergingSettle)
	}
	return nil
}

// afterPlacement 有已创建的酒店就进入买股阶段，否则直接轮转
func (h *Hub) afterPlacement(roomID string, g game.Play) error {
	if len(g.GetBoard().ActiveHotels) > 0 {
		return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusBuyStock)
	}
	return h.advanceTurn(roomID, g)
}

// advanceTurn 补牌、轮到下一位；牌堆摸完就收局
func (h *Hub) advanceTurn(roomID string, g game.Play) error {
	turn := g.ChangeTurn()
	if g.IsGameEnd() {
		return h.finishGame(roomID, g)
	}
	logger.L().Infof("✅ 当前玩家切换为: %s", turn.Status)
	return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusSetTile)
}

func (h *Hub) handleCreateCompanyMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.guardTurn(roomID, playerID, dto.RoomStatusCreateCompany)
	if !ok {
		return
	}
	company, ok := msgMap["payload"].(string)
	if !ok {
		logger.L().Warn("❌ 无效的 payload")
		return
	}

	tileKey, err := GetLastTileKey(repository.Rdb, repository.Ctx, roomID)
	if err != nil || tileKey == "" {
		logger.L().Warnf("❌ 获取创建公司的 tile 失败: %v", err)
		return
	}

	result := g.FoundHotel(tileKey, company)
	if result.Error != "" {
		logger.L().Warnf("❌ 创建酒店失败: %s", result.Error)
		return
	}
	logger.L().Infof("✅ 玩家 %s 在 %s 创建酒店 %s（奖励股: %v）",
		playerID, tileKey, company, result.StockAlloted)

	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusBuyStock); err != nil {
		logger.L().Warnf("❌ 设置房间状态失败: %v", err)
	}
}

func (h *Hub) handleBuyStockMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.guardTurn(roomID, playerID, dto.RoomStatusBuyStock)
	if !ok {
		return
	}

	var requests []dto.BuyStockRequest
	if stocks, ok := msgMap["payload"].(map[string]interface{}); ok {
		for company, countVal := range stocks {
			count, _ := countVal.(float64)
			requests = append(requests, dto.BuyStockRequest{Hotel: company, Count: int(count)})
		}
	}

	result := g.BuyStocks(requests, playerID)
	if result.Error != "" {
		logger.L().Warnf("❌ 购买股票失败: %s", result.Error)
		return
	}
	logger.L().Infof("✅ 玩家 %s 购买股票完成，余额 %d", playerID, result.Player.Cash)

	if err := h.advanceTurn(roomID, g); err != nil {
		logger.L().Warnf("切换玩家失败: %v", err)
	}
}

// handleEndTurnMessage 买股阶段什么都不买，直接结束回合
func (h *Hub) handleEndTurnMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.guardTurn(roomID, playerID, dto.RoomStatusBuyStock)
	if !ok {
		return
	}
	if err := h.advanceTurn(roomID, g); err != nil {
		logger.L().Warnf("切换玩家失败: %v", err)
	}
}

func (h *Hub) handleMergingSelectionMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.guardTurn(roomID, playerID, dto.RoomStatusMergingSelection)
	if !ok {
		return
	}
	mainCompany, ok := msgMap["payload"].(string)
	if !ok {
		logger.L().Warn("❌ 留下的公司格式错误")
		return
	}

	merger, ok := g.(*game.Merger)
	if !ok {
		logger.L().Warnf("❌ 房间[%s]不在并购模式", roomID)
		return
	}

	details := merger.SetupMergerEntities(mainCompany)
	logger.L().Infof("✅ 并购选择完成: %s 吞并 %v", details.Acquirer, details.Target)

	if merger.IsResolved() {
		if err := h.completeMerger(roomID, merger); err != nil {
			logger.L().Warnf("❌ 并购收尾失败: %v", err)
		}
		return
	}
	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusMergingSettle); err != nil {
		logger.L().Warnf("❌ 设置房间状态失败: %v", err)
	}
}

func (h *Hub) handleMergingSettleMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.manager.Get(roomID)
	if !ok {
		return
	}
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil || roomInfo.GameStatus != dto.RoomStatusMergingSettle {
		logger.L().Warn("❌ 不是合并清算的阶段")
		return
	}
	merger, ok := g.(*game.Merger)
	if !ok {
		logger.L().Warnf("❌ 房间[%s]不在并购模式", roomID)
		return
	}
	if !utils.StringInSlice(playerID, merger.PendingPlayers()) {
		logger.L().Warnf("❌ 玩家[%s]不在待清算名单里", playerID)
		return
	}

	// 多名持股玩家可能同时提交清算，用 Redis 锁逐个放行
	lockKey := fmt.Sprintf("lock:merge_settle:%s", roomID)
	lockValue := uuid.NewString()
	locked, err := repository.Rdb.SetNX(repository.Ctx, lockKey, lockValue, 5*time.Second).Result()
	if err != nil || !locked {
		logger.L().Warnf("⚠️ 玩家[%s]尝试清算但加锁失败，可能有人在操作中", playerID)
		return
	}
	defer func() {
		val, err := repository.Rdb.Get(repository.Ctx, lockKey).Result()
		if err == nil && val == lockValue {
			repository.Rdb.Del(repository.Ctx, lockKey)
		}
	}()

	items, ok := decodeSettleItems(msgMap["payload"])
	if !ok {
		logger.L().Warn("❌ 无效的 payload")
		return
	}

	trade := make(map[string]int)
	sell := make(map[string]int)
	for _, item := range items {
		sell[item.Company] += int(item.SellAmount)
		trade[item.Company] += int(item.ExchangeAmount)
	}

	result := merger.TradeAndSellStocks(trade, sell, playerID)
	if result.Error != "" {
		logger.L().Warnf("❌ 玩家[%s]清算失败: %s", playerID, result.Error)
		return
	}
	logger.L().Infof("✅ 玩家 %s 清算完成，余额 %d", playerID, result.Player.Cash)

	if merger.IsResolved() {
		if err := h.completeMerger(roomID, merger); err != nil {
			logger.L().Warnf("❌ 并购收尾失败: %v", err)
		}
	}
}

func decodeSettleItems(payload interface{}) ([]dto.MergingSettleItem, bool) {
	raw, ok := payload.([]interface{})
	if !ok {
		return nil, false
	}
	var items []dto.MergingSettleItem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	})
	if err != nil {
		return nil, false
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, false
	}
	return items, true
}

// completeMerger 被并购酒店的 tile 全部划给主并公司，条目换回标准模式
func (h *Hub) completeMerger(roomID string, merger *game.Merger) error {
	std := merger.Complete()
	h.manager.Update(roomID, std)
	logger.L().Infof("✅ 房间 %s 并购完成，主并公司: %s", roomID, merger.Details().Acquirer)
	return SetGameStatus(repository.Rdb, roomID, dto.RoomStatusBuyStock)
}

func (h *Hub) handleGameEndMessage(roomID, playerID string, msgMap map[string]interface{}) {
	g, ok := h.manager.Get(roomID)
	if !ok {
		return
	}
	if !g.IsGameEnd() {
		return
	}
	if err := h.finishGame(roomID, g); err != nil {
		logger.L().Warnf("❌ 收局失败: %v", err)
	}
}

// finishGame 终局结算：逐家酒店发红利、定胜者、战绩落库
func (h *Hub) finishGame(roomID string, g game.Play) error {
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err == nil && roomInfo.GameStatus == dto.RoomStatusGameOver {
		return nil // 已经收过局了
	}

	dividends := g.DistributeEndGameBonus()
	winner := g.Winner()

	cash := make(map[string]int)
	for _, id := range g.PlayersID() {
		if p := g.PlayerSnapshot(id); p != nil {
			cash[id] = p.Cash
		}
	}
	if err := repository.SaveMatchResult(dto.MatchResult{
		RoomID:   roomID,
		WinnerID: winner,
		Cash:     cash,
	}); err != nil {
		logger.L().Warnf("❌ 战绩落库失败: %v", err)
	}

	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusGameOver); err != nil {
		return err
	}
	logger.L().Infof("🏁 房间 %s 对局结束，胜者: %s", roomID, winner)

	h.broadcastMessage(roomID, map[string]interface{}{
		"type":      "game_over",
		"winner":    winner,
		"dividends": dividends,
		"cash":      cash,
	})
	return nil
}
