package dto

// ── 数据导入模块 DTO ──

// DateRange 导入数据覆盖的日期范围
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ImportResult 导入结果
type ImportResult struct {
	Success      bool       `json:"success"`
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	SkippedRows  int        `json:"skipped_rows"`
	FailedRows   int        `json:"failed_rows"`
	Errors       []string   `json:"errors,omitempty"`
	DateRange    *DateRange `json:"date_range,omitempty"`
}

// ImportRecordResponse 导入历史记录
type ImportRecordResponse struct {
	ID          uint     `json:"id"`
	Filename    string   `json:"filename"`
	FileType    string   `json:"file_type"`
	TotalRows   int      `json:"total_rows"`
	SuccessRows int      `json:"success_rows"`
	FailedRows  int      `json:"failed_rows"`
	Status      string   `json:"status"`
	Errors      []string `json:"errors,omitempty"`
	ImportTime  string   `json:"import_time"`
}

// ImportHistoryQuery 导入历史查询参数
type ImportHistoryQuery struct {
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}
