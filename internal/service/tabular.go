package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ── 表格读取与列映射 ──
//
// Excel 与 CSV 导入共用同一套表格抽象: 首行为表头，其余为数据行。
// 列名按同义词表匹配（完全匹配，先到先得），中英文表头皆可。

// table 统一的表格内容
type table struct {
	headers []string
	rows    [][]string
}

// 字段标识符，列映射与行取值共用
const (
	fieldLocationCode  = "location_code"
	fieldDate          = "date"
	fieldPickFrequency = "pick_frequency"
	fieldTurnoverRate  = "turnover_rate"
	fieldInventoryQty  = "inventory_qty"
	fieldInboundQty    = "inbound_qty"
	fieldOutboundQty   = "outbound_qty"
	fieldDisplayLabel  = "display_label"
)

var requiredFields = []string{fieldLocationCode, fieldDate, fieldPickFrequency}

var optionalFields = []string{
	fieldTurnoverRate, fieldInventoryQty, fieldInboundQty, fieldOutboundQty, fieldDisplayLabel,
}

// columnSynonyms 每个字段可接受的表头写法，按序匹配
var columnSynonyms = map[string][]string{
	fieldLocationCode:  {"库位编码", "location_code", "库位", "full_code"},
	fieldDate:          {"日期", "date", "统计日期"},
	fieldPickFrequency: {"拣货频率", "pick_frequency", "拣货次数", "frequency"},
	fieldTurnoverRate:  {"周转率", "turnover_rate", "turnover"},
	fieldInventoryQty:  {"库存数量", "inventory_qty", "inventory", "库存"},
	fieldInboundQty:    {"入库数量", "inbound_qty", "inbound", "入库"},
	fieldOutboundQty:   {"出库数量", "outbound_qty", "outbound", "出库"},
	fieldDisplayLabel:  {"显示标识", "display_label", "标识", "自定义编码"},
}

// mapColumns 按同义词表把表头映射到字段 → 列下标
// 缺失的必需列以错误文案逐列返回，可选列缺失时静默跳过。
func mapColumns(headers []string) (map[string]int, []string) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	mapping := make(map[string]int)
	var missing []string

	for _, field := range requiredFields {
		col, ok := matchColumn(index, field)
		if !ok {
			missing = append(missing, fmt.Sprintf(
				"缺少必需列: %s (可用名称: %s)", field, strings.Join(columnSynonyms[field], ", ")))
			continue
		}
		mapping[field] = col
	}
	for _, field := range optionalFields {
		if col, ok := matchColumn(index, field); ok {
			mapping[field] = col
		}
	}

	return mapping, missing
}

func matchColumn(index map[string]int, field string) (int, bool) {
	for _, synonym := range columnSynonyms[field] {
		if col, ok := index[synonym]; ok {
			return col, true
		}
	}
	return 0, false
}

// cell 按列映射取单元格值，行短于列下标时返回空串
func (t *table) cell(row []string, mapping map[string]int, field string) string {
	col, ok := mapping[field]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// readExcelTable 读取 Excel 第一张工作表
func readExcelTable(r io.Reader) (*table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel 文件不包含工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("文件为空")
	}

	return &table{headers: rows[0], rows: rows[1:]}, nil
}

// csvDecoders 尝试的编码顺序: UTF-8（含 BOM）、GBK、GB18030
var csvDecoders = []struct {
	name   string
	decode func([]byte) ([]byte, error)
}{
	{"utf-8", decodeUTF8},
	{"gbk", decodeWith(simplifiedchinese.GBK.NewDecoder())},
	{"gb18030", decodeWith(simplifiedchinese.GB18030.NewDecoder())},
}

func decodeUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("非 UTF-8 内容")
	}
	return data, nil
}

func decodeWith(dec *encoding.Decoder) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		decoded, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
}

// readCSVTable 读取 CSV，按编码顺序逐一尝试解码
func readCSVTable(r io.Reader) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 文件失败: %w", err)
	}

	var lastErr error
	for _, d := range csvDecoders {
		decoded, err := d.decode(data)
		if err != nil {
			lastErr = err
			continue
		}
		t, err := parseCSV(decoded)
		if err != nil {
			lastErr = err
			continue
		}
		return t, nil
	}
	return nil, fmt.Errorf("无法识别 CSV 文件编码: %w", lastErr)
}

func parseCSV(data []byte) (*table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 内容失败: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("文件为空")
	}

	return &table{headers: records[0], rows: records[1:]}, nil
}
