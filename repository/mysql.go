package repository

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"acquire/dto"
	"acquire/logger"
)

// DB 战绩库。MYSQL_DSN 未配置时保持 nil，战绩落库整体跳过。
var DB *sql.DB

func InitMySQL() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		logger.L().Warn("⚠️ 未配置 MYSQL_DSN，对局战绩不会落库")
		return
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		logger.L().Fatalf("MySQL 连接失败: %v", err)
	}
	if err := db.Ping(); err != nil {
		logger.L().Fatalf("MySQL 连接失败: %v", err)
	}
	if err := migrate(db); err != nil {
		logger.L().Fatalf("MySQL 建表失败: %v", err)
	}

	DB = db
	logger.L().Info("✅ MySQL 连接成功")
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS match_results (
			id         BIGINT AUTO_INCREMENT PRIMARY KEY,
			room_id    VARCHAR(32)  NOT NULL,
			player_id  VARCHAR(64)  NOT NULL,
			cash       INT          NOT NULL,
			is_winner  TINYINT(1)   NOT NULL DEFAULT 0,
			created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_room (room_id)
		)`)
	return err
}

// SaveMatchResult 一局结束后把每名玩家的最终现金写进战绩表，整局一个事务
func SaveMatchResult(result dto.MatchResult) error {
	if DB == nil {
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	for playerID, cash := range result.Cash {
		isWinner := 0
		if playerID == result.WinnerID {
			isWinner = 1
		}
		if _, err := tx.Exec(
			"INSERT INTO match_results (room_id, player_id, cash, is_winner) VALUES (?, ?, ?, ?)",
			result.RoomID, playerID, cash, isWinner,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("写入战绩失败: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交战绩失败: %w", err)
	}
	return nil
}

// RecentResults 最近 limit 局的获胜记录，大厅展示用
func RecentResults(limit int) ([]dto.MatchResult, error) {
	if DB == nil {
		return nil, nil
	}

	rows, err := DB.Query(
		"SELECT room_id, player_id, cash, is_winner FROM match_results ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("查询战绩失败: %w", err)
	}
	defer rows.Close()

	byRoom := make(map[string]*dto.MatchResult)
	var order []string
	for rows.Next() {
		var roomID, playerID string
		var cash, isWinner int
		if err := rows.Scan(&roomID, &playerID, &cash, &isWinner); err != nil {
			return nil, fmt.Errorf("读取战绩失败: %w", err)
		}
		r, ok := byRoom[roomID]
		if !ok {
			r = &dto.MatchResult{RoomID: roomID, Cash: make(map[string]int)}
			byRoom[roomID] = r
			order = append(order, roomID)
		}
		r.Cash[playerID] = cash
		if isWinner == 1 {
			r.WinnerID = playerID
		}
	}

	results := make([]dto.MatchResult, 0, len(order))
	for _, roomID := range order {
		results = append(results, *byRoom[roomID])
	}
	return results, rows.Err()
}
