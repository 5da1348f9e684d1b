package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// WarehouseRepository 仓库数据访问接口
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *model.Warehouse) error
	GetByID(ctx context.Context, id uint) (*model.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*model.Warehouse, error)
	FirstActive(ctx context.Context) (*model.Warehouse, error)
	List(ctx context.Context, isActive bool) ([]model.Warehouse, error)
	Update(ctx context.Context, warehouse *model.Warehouse) error
}

type warehouseRepo struct {
	db *gorm.DB
}

// NewWarehouseRepo 创建 WarehouseRepository 实例
func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := r.db.WithContext(ctx).First(&warehouse, id).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepo) GetByCode(ctx context.Context, code string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// FirstActive 返回 ID 最小的活跃仓库（导入路径默认使用）
func (r *warehouseRepo) FirstActive(ctx context.Context) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepo) List(ctx context.Context, isActive bool) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.WithContext(ctx).
		Where("is_active = ?", isActive).
		Order("id").
		Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *model.Warehouse) error {
	return r.db.WithContext(ctx).Save(warehouse).Error
}
