package model

import "time"

// 导入状态
const (
	ImportStatusSuccess = "success" // 全部行导入成功
	ImportStatusPartial = "partial" // 部分行失败或跳过
	ImportStatusFailed  = "failed"  // 无成功行且存在失败
)

// 文件类型
const (
	ImportFileTypeExcel = "excel"
	ImportFileTypeCSV   = "csv"
)

// ImportRecord 导入记录表 — 每次导入持久化一条不可变摘要
type ImportRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Filename    string    `gorm:"type:varchar(255);not null"  json:"filename"`
	FileType    string    `gorm:"type:varchar(20);not null"   json:"file_type"`
	TotalRows   int       `gorm:"not null;default:0"          json:"total_rows"`
	SuccessRows int       `gorm:"not null;default:0"          json:"success_rows"`
	FailedRows  int       `gorm:"not null;default:0"          json:"failed_rows"`
	Status      string    `gorm:"type:varchar(20);not null;default:'success'" json:"status"`
	Errors      *string   `gorm:"type:text"                   json:"errors,omitempty"` // 错误信息 JSON 数组
	ImportTime  time.Time `gorm:"not null;index:idx_import_time" json:"import_time"`
}

// TableName 指定表名
func (ImportRecord) TableName() string { return "import_records" }
