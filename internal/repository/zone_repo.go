package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// ZoneRepository 库区数据访问接口
type ZoneRepository interface {
	Create(ctx context.Context, zone *model.Zone) error
	GetByID(ctx context.Context, id uint) (*model.Zone, error)
	GetByCode(ctx context.Context, warehouseID uint, code string) (*model.Zone, error)
	ListByWarehouse(ctx context.Context, warehouseID uint, isActive bool) ([]model.Zone, error)
	DeleteByWarehouse(ctx context.Context, warehouseID uint) error
}

type zoneRepo struct {
	db *gorm.DB
}

// NewZoneRepo 创建 ZoneRepository 实例
func NewZoneRepo(db *gorm.DB) ZoneRepository {
	return &zoneRepo{db: db}
}

func (r *zoneRepo) Create(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *zoneRepo) GetByID(ctx context.Context, id uint) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).First(&zone, id).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepo) GetByCode(ctx context.Context, warehouseID uint, code string) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND code = ?", warehouseID, code).
		First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepo) ListByWarehouse(ctx context.Context, warehouseID uint, isActive bool) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND is_active = ?", warehouseID, isActive).
		Order("sort_order").
		Find(&zones).Error
	return zones, err
}

// DeleteByWarehouse 删除仓库下所有库区（外键级联删除巷道、货架、库位）
func (r *zoneRepo) DeleteByWarehouse(ctx context.Context, warehouseID uint) error {
	return r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Delete(&model.Zone{}).Error
}
