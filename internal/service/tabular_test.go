package service

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestMapColumnsChineseHeaders(t *testing.T) {
	mapping, missing := mapColumns([]string{"库位编码", "日期", "拣货频率", "周转率", "库存数量"})
	if len(missing) != 0 {
		t.Fatalf("不应有缺失列: %v", missing)
	}
	want := map[string]int{
		fieldLocationCode:  0,
		fieldDate:          1,
		fieldPickFrequency: 2,
		fieldTurnoverRate:  3,
		fieldInventoryQty:  4,
	}
	for field, col := range want {
		if mapping[field] != col {
			t.Errorf("%s 映射到列 %d, 期望 %d", field, mapping[field], col)
		}
	}
}

func TestMapColumnsEnglishSynonyms(t *testing.T) {
	mapping, missing := mapColumns([]string{"full_code", "date", "frequency", "inbound", "outbound"})
	if len(missing) != 0 {
		t.Fatalf("英文同义词应可匹配: %v", missing)
	}
	if mapping[fieldLocationCode] != 0 || mapping[fieldPickFrequency] != 2 {
		t.Errorf("mapping = %v", mapping)
	}
	if mapping[fieldInboundQty] != 3 || mapping[fieldOutboundQty] != 4 {
		t.Errorf("可选列映射错误: %v", mapping)
	}
}

func TestMapColumnsMissingRequired(t *testing.T) {
	_, missing := mapColumns([]string{"日期", "周转率"})
	if len(missing) != 2 {
		t.Fatalf("应缺少 2 个必需列, got %v", missing)
	}
	for _, msg := range missing {
		if !strings.HasPrefix(msg, "缺少必需列:") {
			t.Errorf("错误文案格式不符: %q", msg)
		}
	}
}

func TestMapColumnsFirstSynonymWins(t *testing.T) {
	// 同一字段出现多个同义表头时按同义词表顺序取第一个命中的
	mapping, _ := mapColumns([]string{"location_code", "库位编码", "日期", "拣货频率"})
	if mapping[fieldLocationCode] != 1 {
		t.Errorf("库位编码 应优先于 location_code, mapping = %v", mapping)
	}
}

func TestReadCSVTableUTF8(t *testing.T) {
	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,15\n"
	tbl, err := readCSVTable(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.headers) != 3 || tbl.headers[0] != "库位编码" {
		t.Errorf("headers = %v", tbl.headers)
	}
	if len(tbl.rows) != 1 || tbl.rows[0][0] != "C-01巷-货架01-C1" {
		t.Errorf("rows = %v", tbl.rows)
	}
}

func TestReadCSVTableBOM(t *testing.T) {
	csvData := "\xEF\xBB\xBF库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,15\n"
	tbl, err := readCSVTable(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.headers[0] != "库位编码" {
		t.Errorf("BOM 未被剥离: %q", tbl.headers[0])
	}
}

func TestReadCSVTableGBK(t *testing.T) {
	utf8Data := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,15\n"
	gbkData, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(utf8Data))
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := readCSVTable(bytes.NewReader(gbkData))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.headers[0] != "库位编码" {
		t.Errorf("GBK 解码失败: %q", tbl.headers[0])
	}
	if tbl.rows[0][0] != "C-01巷-货架01-C1" {
		t.Errorf("GBK 数据行解码失败: %q", tbl.rows[0][0])
	}
}

func TestCellShortRow(t *testing.T) {
	tbl := &table{headers: []string{"库位编码", "日期", "拣货频率"}}
	mapping, _ := mapColumns(tbl.headers)

	// 行短于映射列下标时返回空串而非越界
	if got := tbl.cell([]string{"C-01巷-货架01-C1"}, mapping, fieldPickFrequency); got != "" {
		t.Errorf("短行取值应为空串, got %q", got)
	}
	if got := tbl.cell([]string{"  C1  ", "2026-01-01", "5"}, mapping, fieldLocationCode); got != "C1" {
		t.Errorf("取值应去除首尾空白, got %q", got)
	}
}

func TestTemplateCSVRoundTrip(t *testing.T) {
	data := buildTemplateCSV(fallbackTemplateRows)
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV 模板应携带 UTF-8 BOM")
	}

	tbl, err := readCSVTable(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("模板自身应可被导入读取: %v", err)
	}
	if _, missing := mapColumns(tbl.headers); len(missing) != 0 {
		t.Errorf("模板表头缺少必需列: %v", missing)
	}
	if len(tbl.rows) == 0 {
		t.Error("模板应包含示例数据行")
	}
}

func TestParseIntCell(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false}, {"15", 15, false}, {"15.9", 15, false}, {"-3", -3, false},
		{"abc", 0, true}, {"1,5", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIntCell(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIntCell(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIntCell(%q) = %d, 期望 %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseFloatCell(t *testing.T) {
	if v, err := parseFloatCell(""); err != nil || v != 0 {
		t.Errorf("空单元格应取 0: %v, %v", v, err)
	}
	if v, err := parseFloatCell("0.85"); err != nil || v != 0.85 {
		t.Errorf("parseFloatCell(0.85) = %v, %v", v, err)
	}
	if _, err := parseFloatCell("高"); err == nil {
		t.Error("非空不可转换的单元格应报错")
	}
}
