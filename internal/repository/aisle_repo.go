package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// AisleRepository 巷道数据访问接口
type AisleRepository interface {
	Create(ctx context.Context, aisle *model.Aisle) error
	GetByID(ctx context.Context, id uint) (*model.Aisle, error)
	GetByCode(ctx context.Context, zoneID uint, code string) (*model.Aisle, error)
	ListByZone(ctx context.Context, zoneID uint, isActive bool) ([]model.Aisle, error)
	CountByZone(ctx context.Context, zoneID uint) (int64, error)
}

type aisleRepo struct {
	db *gorm.DB
}

// NewAisleRepo 创建 AisleRepository 实例
func NewAisleRepo(db *gorm.DB) AisleRepository {
	return &aisleRepo{db: db}
}

func (r *aisleRepo) Create(ctx context.Context, aisle *model.Aisle) error {
	return r.db.WithContext(ctx).Create(aisle).Error
}

func (r *aisleRepo) GetByID(ctx context.Context, id uint) (*model.Aisle, error) {
	var aisle model.Aisle
	if err := r.db.WithContext(ctx).First(&aisle, id).Error; err != nil {
		return nil, err
	}
	return &aisle, nil
}

func (r *aisleRepo) GetByCode(ctx context.Context, zoneID uint, code string) (*model.Aisle, error) {
	var aisle model.Aisle
	err := r.db.WithContext(ctx).
		Where("zone_id = ? AND code = ?", zoneID, code).
		First(&aisle).Error
	if err != nil {
		return nil, err
	}
	return &aisle, nil
}

func (r *aisleRepo) ListByZone(ctx context.Context, zoneID uint, isActive bool) ([]model.Aisle, error) {
	var aisles []model.Aisle
	err := r.db.WithContext(ctx).
		Where("zone_id = ? AND is_active = ?", zoneID, isActive).
		Order("sort_order").
		Find(&aisles).Error
	return aisles, err
}

// CountByZone 统计库区下巷道数量（隐式创建时用作 y 坐标）
func (r *aisleRepo) CountByZone(ctx context.Context, zoneID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Aisle{}).
		Where("zone_id = ?", zoneID).
		Count(&count).Error
	return count, err
}
