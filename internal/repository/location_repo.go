package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// LocationRepository 库位数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	CreateBatch(ctx context.Context, locations []model.Location) error
	GetByFullCode(ctx context.Context, fullCode string) (*model.Location, error)
	ListByShelf(ctx context.Context, shelfID uint, isActive bool) ([]model.Location, error)
	ListSample(ctx context.Context, limit int) ([]model.Location, error)
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo 创建 LocationRepository 实例
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, location *model.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *locationRepo) CreateBatch(ctx context.Context, locations []model.Location) error {
	if len(locations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(locations, 200).Error
}

func (r *locationRepo) GetByFullCode(ctx context.Context, fullCode string) (*model.Location, error) {
	var location model.Location
	err := r.db.WithContext(ctx).
		Where("full_code = ?", fullCode).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) ListByShelf(ctx context.Context, shelfID uint, isActive bool) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).
		Where("shelf_id = ? AND is_active = ?", shelfID, isActive).
		Order("row_index, column_index").
		Find(&locations).Error
	return locations, err
}

// ListSample 取 ID 最小的 n 个活跃库位（导入模板示例用）
func (r *locationRepo) ListSample(ctx context.Context, limit int) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Limit(limit).
		Find(&locations).Error
	return locations, err
}
