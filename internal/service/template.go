package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ── 导入模板生成 ──

// buildTemplateExcel 生成带表头、示例数据与列宽的 Excel 模板
func buildTemplateExcel(templateRows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for col, header := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for r, row := range templateRows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// 库位编码与日期列加宽
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "H", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 模板失败: %w", err)
	}
	return buf.Bytes(), nil
}

// buildTemplateCSV 生成带 UTF-8 BOM 的 CSV 模板，Excel 打开不乱码
func buildTemplateCSV(templateRows [][]string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	_ = w.Write(templateHeaders)
	for _, row := range templateRows {
		_ = w.Write(row)
	}
	w.Flush()

	return buf.Bytes()
}
