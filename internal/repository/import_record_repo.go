package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// ImportRecordRepository 导入记录数据访问接口
type ImportRecordRepository interface {
	Create(ctx context.Context, record *model.ImportRecord) error
	ListRecent(ctx context.Context, limit int) ([]model.ImportRecord, error)
}

type importRecordRepo struct {
	db *gorm.DB
}

// NewImportRecordRepo 创建 ImportRecordRepository 实例
func NewImportRecordRepo(db *gorm.DB) ImportRecordRepository {
	return &importRecordRepo{db: db}
}

func (r *importRecordRepo) Create(ctx context.Context, record *model.ImportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *importRecordRepo) ListRecent(ctx context.Context, limit int) ([]model.ImportRecord, error) {
	var records []model.ImportRecord
	err := r.db.WithContext(ctx).
		Order("import_time DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
