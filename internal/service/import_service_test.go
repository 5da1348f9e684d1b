package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"warehouse-heatmap/backend/config"
	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Heat: config.HeatConfig{
			FrequencyWeight: 0.6,
			TurnoverWeight:  0.4,
			DefaultColumns:  5,
			CacheTTL:        5 * time.Minute,
		},
		Import: config.ImportConfig{MaxUploadMB: 10},
	}
}

func newImportServiceForTest(repo *repository.Repository, cfg *config.Config) ImportService {
	return NewImportService(repo, nil, cfg, zap.NewNop())
}

func heatRecords(repo *repository.Repository) []*model.LocationHeatData {
	var out []*model.LocationHeatData
	for _, r := range repo.Heat.(*mockHeatRepo).records {
		out = append(out, r)
	}
	return out
}

func TestImportCSVCreatesHierarchy(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := strings.Join([]string{
		"库位编码,日期,拣货频率,周转率,库存数量,显示标识",
		"C-01巷-货架01-C1,2026-01-01,15,0.8,120,促销区",
		"C-01巷-货架01-C7,2026-01-02,8,0.5,90,",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), "heat.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	if !result.Success || result.ImportedRows != 2 || result.FailedRows != 0 || result.SkippedRows != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.DateRange == nil || result.DateRange.StartDate != "2026-01-01" || result.DateRange.EndDate != "2026-01-02" {
		t.Errorf("DateRange = %+v", result.DateRange)
	}

	// 默认仓库与完整层级应被隐式创建
	warehouse, err := repo.Warehouse.FirstActive(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if warehouse.Code != "WH001" || warehouse.Name != "默认仓库" {
		t.Errorf("默认仓库 = %+v", warehouse)
	}

	loc1, err := repo.Location.GetByFullCode(context.Background(), "C-01巷-货架01-C1")
	if err != nil {
		t.Fatalf("库位 C1 未创建: %v", err)
	}
	if loc1.RowLabel != "A" || loc1.ColumnNumber != 1 {
		t.Errorf("C1 行列 = %s%d", loc1.RowLabel, loc1.ColumnNumber)
	}
	loc7, err := repo.Location.GetByFullCode(context.Background(), "C-01巷-货架01-C7")
	if err != nil {
		t.Fatalf("库位 C7 未创建: %v", err)
	}
	if loc7.RowIndex != 1 || loc7.ColumnIndex != 1 {
		t.Errorf("C7 应位于第二行第二列: %+v", loc7)
	}

	// 货架容量应覆盖 C7 所在的第二行，且显示标识被应用
	shelf, err := repo.Shelf.GetByID(context.Background(), loc1.ShelfID)
	if err != nil {
		t.Fatal(err)
	}
	if shelf.Rows < 2 || shelf.Columns < 5 {
		t.Errorf("货架容量 %dx%d 不足", shelf.Rows, shelf.Columns)
	}
	if shelf.DisplayLabel == nil || *shelf.DisplayLabel != "促销区" {
		t.Errorf("显示标识未应用: %v", shelf.DisplayLabel)
	}

	// 热度值取拣货频率
	for _, r := range heatRecords(repo) {
		if r.LocationID == loc1.ID && r.HeatValue != 15 {
			t.Errorf("heat_value = %v, 期望 15", r.HeatValue)
		}
	}
}

func TestImportMissingColumnFailsWhole(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := "库位编码,日期\nC-01巷-货架01-C1,2026-01-01\n"
	result, err := svc.ImportCSV(context.Background(), "bad.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	if result.Success || result.ImportedRows != 0 || result.FailedRows != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "缺少必需列") {
		t.Errorf("Errors = %v", result.Errors)
	}
	if len(heatRecords(repo)) != 0 {
		t.Error("列校验失败不应产生任何热度写入")
	}

	// 失败同样要留下导入记录
	records, _ := repo.ImportRecord.ListRecent(context.Background(), 10)
	if len(records) != 1 || records[0].Status != model.ImportStatusFailed {
		t.Errorf("records = %+v", records)
	}
}

func TestImportSkipAndFailureRows(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := strings.Join([]string{
		"库位编码,日期,拣货频率",
		"C-01巷-货架01-C1,2026-01-01,15",  // 正常
		"无法解析,2026-01-01,5",             // 编码不可解析且不存在 → 跳过
		",2026-01-01,5",                 // 空编码同样走跳过
		"C-01巷-货架01-C2,2026-01-01,abc", // 数值单元格不可转换 → 失败
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), "mixed.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	if result.ImportedRows != 1 || result.SkippedRows != 2 || result.FailedRows != 1 {
		t.Fatalf("result = %+v", result)
	}
	if !result.Success {
		t.Error("有成功行时 success 应为 true")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "跳过 2 行（2 个库位不存在）") {
		t.Errorf("跳过摘要应置于错误列表首位: %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "第 5 行处理失败") ||
		!strings.Contains(result.Errors[1], "无效的数值") {
		t.Errorf("行号应按含表头的 1 起算且带上转换错误: %q", result.Errors[1])
	}

	records, _ := repo.ImportRecord.ListRecent(context.Background(), 10)
	if len(records) != 1 || records[0].Status != model.ImportStatusPartial {
		t.Errorf("records = %+v", records)
	}
}

func TestImportAllRowsFailStatusFailed(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,x\nC-01巷-货架01-C2,2026-01-02,y\n"
	result, err := svc.ImportCSV(context.Background(), "fail.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.ImportedRows != 0 || result.FailedRows != 2 {
		t.Fatalf("result = %+v", result)
	}

	records, _ := repo.ImportRecord.ListRecent(context.Background(), 10)
	if records[0].Status != model.ImportStatusFailed {
		t.Errorf("status = %s", records[0].Status)
	}
}

func TestImportUpsertSameDay(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	// 同库位同日出现两次，后者覆盖前者
	csvData := strings.Join([]string{
		"库位编码,日期,拣货频率",
		"C-01巷-货架01-C1,2026-01-01,15",
		"C-01巷-货架01-C1,2026-01-01 18:00:00,20",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), "dup.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.ImportedRows != 2 {
		t.Fatalf("result = %+v", result)
	}

	records := heatRecords(repo)
	if len(records) != 1 {
		t.Fatalf("同日重复应合并为一条, got %d", len(records))
	}
	if records[0].PickFrequency != 20 || records[0].HeatValue != 20 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestImportReplacesPreviousData(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	first := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,15\nC-01巷-货架01-C2,2026-01-01,9\n"
	if _, err := svc.ImportCSV(context.Background(), "a.csv", strings.NewReader(first)); err != nil {
		t.Fatal(err)
	}

	second := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-02-01,3\n"
	if _, err := svc.ImportCSV(context.Background(), "b.csv", strings.NewReader(second)); err != nil {
		t.Fatal(err)
	}

	// 全量替换: 第一次的两条记录不应残留
	records := heatRecords(repo)
	if len(records) != 1 {
		t.Fatalf("第二次导入后应只剩 1 条热度记录, got %d", len(records))
	}
	if records[0].PickFrequency != 3 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestImportStrictDate(t *testing.T) {
	cfg := testConfig()
	cfg.Import.StrictDate = true
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, cfg)

	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,不是日期,15\n"
	result, err := svc.ImportCSV(context.Background(), "strict.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.ImportedRows != 0 || result.FailedRows != 1 {
		t.Fatalf("严格模式下坏日期应计为行失败: %+v", result)
	}
}

func TestImportLenientDateFallsBackToNow(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,不是日期,15\n"
	result, err := svc.ImportCSV(context.Background(), "lenient.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.ImportedRows != 1 {
		t.Fatalf("宽松模式下坏日期应回退为当天: %+v", result)
	}

	today := time.Now().Format("2006-01-02")
	if result.DateRange == nil || result.DateRange.StartDate != today {
		t.Errorf("DateRange = %+v", result.DateRange)
	}
}

func TestImportExistingLocationDirectMatch(t *testing.T) {
	repo := newMockRepository()
	ctx := context.Background()

	// 预置一个编码格式不可解析的库位，导入应按完整编码直查命中
	shelf := &model.Shelf{AisleID: 1, Code: "S1", Rows: 4, Columns: 5, Layers: 1, IsActive: true}
	if err := repo.Shelf.Create(ctx, shelf); err != nil {
		t.Fatal(err)
	}
	if err := repo.Location.Create(ctx, &model.Location{
		ShelfID: shelf.ID, Code: "特殊01", FullCode: "特殊编码-01",
		RowLabel: "A", ColumnNumber: 1, IsActive: true,
	}); err != nil {
		t.Fatal(err)
	}

	svc := newImportServiceForTest(repo, testConfig())
	csvData := "库位编码,日期,拣货频率\n特殊编码-01,2026-01-01,7\n"
	result, err := svc.ImportCSV(ctx, "direct.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.ImportedRows != 1 || result.SkippedRows != 0 {
		t.Fatalf("已存在库位应直查命中: %+v", result)
	}
}

func TestImportHistory(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,15\n"
	if _, err := svc.ImportCSV(context.Background(), "h.csv", strings.NewReader(csvData)); err != nil {
		t.Fatal(err)
	}

	history, err := svc.History(context.Background(), 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %+v", history)
	}
	rec := history[0]
	if rec.Filename != "h.csv" || rec.FileType != model.ImportFileTypeCSV ||
		rec.SuccessRows != 1 || rec.Status != model.ImportStatusSuccess {
		t.Errorf("rec = %+v", rec)
	}
}

func TestTemplateUsesRealLocations(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	// 空库时退回内置示例行
	data := string(svc.TemplateCSV(context.Background()))
	if !strings.Contains(data, "C-01巷-货架01-C1") {
		t.Error("空库模板应包含内置示例库位")
	}

	csvData := "库位编码,日期,拣货频率\nD-02巷-货架03-B7,2026-01-01,15\n"
	if _, err := svc.ImportCSV(context.Background(), "t.csv", strings.NewReader(csvData)); err != nil {
		t.Fatal(err)
	}

	data = string(svc.TemplateCSV(context.Background()))
	if !strings.Contains(data, "D-02巷-货架03-B7") {
		t.Errorf("模板示例应取真实库位, got:\n%s", data)
	}
}

func TestImportInvalidMetricCellFailsRow(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	csvData := "库位编码,日期,拣货频率\nC-01巷-货架01-C1,2026-01-01,abc\n"
	result, err := svc.ImportCSV(context.Background(), "bad.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	if result.Success || result.ImportedRows != 0 || result.FailedRows != 1 {
		t.Fatalf("非空但不可转换的数值单元格应计为行失败: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "第 2 行处理失败") {
		t.Errorf("Errors = %v", result.Errors)
	}
	if records := heatRecords(repo); len(records) != 0 {
		t.Errorf("失败行不应写入热度数据: %+v", records)
	}
}

func TestImportUnreadableFileSavesFailedRecord(t *testing.T) {
	repo := newMockRepository()
	svc := newImportServiceForTest(repo, testConfig())

	result, err := svc.ImportExcel(context.Background(), "broken.xlsx", strings.NewReader("not a zip"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || len(result.Errors) != 1 {
		t.Fatalf("result = %+v", result)
	}

	records, _ := repo.ImportRecord.ListRecent(context.Background(), 10)
	if len(records) != 1 {
		t.Fatalf("文件不可读也应落一条导入记录: %+v", records)
	}
	rec := records[0]
	if rec.Status != model.ImportStatusFailed || rec.TotalRows != 0 || rec.SuccessRows != 0 {
		t.Errorf("rec = %+v", rec)
	}
	if rec.Errors == nil || !strings.Contains(*rec.Errors, "Excel") {
		t.Errorf("记录应携带读取错误文案: %v", rec.Errors)
	}
}
