package repository

import (
	"context"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// ShelfRepository 货架数据访问接口
type ShelfRepository interface {
	Create(ctx context.Context, shelf *model.Shelf) error
	GetByID(ctx context.Context, id uint) (*model.Shelf, error)
	GetByCode(ctx context.Context, aisleID uint, code string) (*model.Shelf, error)
	ListByAisle(ctx context.Context, aisleID uint, shelfType string, isActive bool) ([]model.Shelf, error)
	CountByAisle(ctx context.Context, aisleID uint) (int64, error)
	Update(ctx context.Context, shelf *model.Shelf) error
}

type shelfRepo struct {
	db *gorm.DB
}

// NewShelfRepo 创建 ShelfRepository 实例
func NewShelfRepo(db *gorm.DB) ShelfRepository {
	return &shelfRepo{db: db}
}

func (r *shelfRepo) Create(ctx context.Context, shelf *model.Shelf) error {
	return r.db.WithContext(ctx).Create(shelf).Error
}

func (r *shelfRepo) GetByID(ctx context.Context, id uint) (*model.Shelf, error) {
	var shelf model.Shelf
	err := r.db.WithContext(ctx).First(&shelf, id).Error
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

func (r *shelfRepo) GetByCode(ctx context.Context, aisleID uint, code string) (*model.Shelf, error) {
	var shelf model.Shelf
	err := r.db.WithContext(ctx).
		Where("aisle_id = ? AND code = ?", aisleID, code).
		First(&shelf).Error
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

// ListByAisle 列出巷道下货架，shelfType 非空时按类型过滤
func (r *shelfRepo) ListByAisle(ctx context.Context, aisleID uint, shelfType string, isActive bool) ([]model.Shelf, error) {
	db := r.db.WithContext(ctx).
		Where("aisle_id = ? AND is_active = ?", aisleID, isActive)
	if shelfType != "" {
		db = db.Where("shelf_type = ?", shelfType)
	}

	var shelves []model.Shelf
	err := db.Order("sort_order").Find(&shelves).Error
	return shelves, err
}

// CountByAisle 统计巷道下货架数量（隐式创建时用作 x 坐标）
func (r *shelfRepo) CountByAisle(ctx context.Context, aisleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shelf{}).
		Where("aisle_id = ?", aisleID).
		Count(&count).Error
	return count, err
}

func (r *shelfRepo) Update(ctx context.Context, shelf *model.Shelf) error {
	return r.db.WithContext(ctx).Save(shelf).Error
}
