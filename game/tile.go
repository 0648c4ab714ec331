package game

import (
	"fmt"
	"strconv"
)

// 棋盘固定 12 列（1-12）x 9 行（A-I），tile 编号形如 "7D"
const (
	MinCol = 1
	MaxCol = 12
	MinRow = 'A'
	MaxRow = 'I'
)

// ParseTile 把 "7D" 拆成列号和行号，越界或格式错误时 ok 为 false
func ParseTile(label string) (col int, row byte, ok bool) {
	if len(label) < 2 {
		return 0, 0, false
	}
	colPart := label[:len(label)-1]
	rowPart := label[len(label)-1]

	col, err := strconv.Atoi(colPart)
	if err != nil {
		return 0, 0, false
	}
	if col < MinCol || col > MaxCol || rowPart < MinRow || rowPart > MaxRow {
		return 0, 0, false
	}
	return col, rowPart, true
}

// TileLabel 由列号和行号拼出 tile 编号
func TileLabel(col int, row byte) string {
	return fmt.Sprintf("%d%c", col, row)
}

// AdjacentOf 返回上下左右最多 4 个邻接 tile，超出棋盘边界的丢弃
func AdjacentOf(label string) []string {
	col, row, ok := ParseTile(label)
	if !ok {
		return nil
	}

	var adjacent []string
	// 左 (col-1)
	if col > MinCol {
		adjacent = append(adjacent, TileLabel(col-1, row))
	}
	// 右 (col+1)
	if col < MaxCol {
		adjacent = append(adjacent, TileLabel(col+1, row))
	}
	// 上 (row-1)
	if row > MinRow {
		adjacent = append(adjacent, TileLabel(col, row-1))
	}
	// 下 (row+1)
	if row < MaxRow {
		adjacent = append(adjacent, TileLabel(col, row+1))
	}
	return adjacent
}

// AllTiles 返回整副 108 张 tile，按列行顺序
func AllTiles() []string {
	tiles := make([]string, 0, (MaxCol-MinCol+1)*int(MaxRow-MinRow+1))
	for col := MinCol; col <= MaxCol; col++ {
		for row := byte(MinRow); row <= byte(MaxRow); row++ {
			tiles = append(tiles, TileLabel(col, row))
		}
	}
	return tiles
}
