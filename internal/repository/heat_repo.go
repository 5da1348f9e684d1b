package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
)

// HeatAggregate 单库位在时间窗口内的聚合热度
type HeatAggregate struct {
	LocationID    uint    `gorm:"column:location_id"`
	PickFrequency int     `gorm:"column:total_pick_frequency"`
	TurnoverRate  float64 `gorm:"column:avg_turnover_rate"`
	InventoryQty  int     `gorm:"column:total_inventory_qty"`
	HeatValue     float64 `gorm:"column:total_heat_value"`
}

// HeatRepository 热度数据访问接口
type HeatRepository interface {
	Create(ctx context.Context, heat *model.LocationHeatData) error
	Update(ctx context.Context, heat *model.LocationHeatData) error
	FindByLocationAndRange(ctx context.Context, locationID uint, start, end time.Time) (*model.LocationHeatData, error)
	DeleteAll(ctx context.Context) error
	AggregateByLocations(ctx context.Context, locationIDs []uint, start, end time.Time) ([]HeatAggregate, error)
}

type heatRepo struct {
	db *gorm.DB
}

// NewHeatRepo 创建 HeatRepository 实例
func NewHeatRepo(db *gorm.DB) HeatRepository {
	return &heatRepo{db: db}
}

func (r *heatRepo) Create(ctx context.Context, heat *model.LocationHeatData) error {
	return r.db.WithContext(ctx).Create(heat).Error
}

func (r *heatRepo) Update(ctx context.Context, heat *model.LocationHeatData) error {
	return r.db.WithContext(ctx).Save(heat).Error
}

// FindByLocationAndRange 查找库位在 [start, end] 闭区间内的热度记录
// (location_id, 自然日) 至多存在一条记录，调用方传入当天首尾时刻
func (r *heatRepo) FindByLocationAndRange(ctx context.Context, locationID uint, start, end time.Time) (*model.LocationHeatData, error) {
	var heat model.LocationHeatData
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND date >= ? AND date <= ?", locationID, start, end).
		First(&heat).Error
	if err != nil {
		return nil, err
	}
	return &heat, nil
}

// DeleteAll 清空全部热度数据（导入采用整体替换语义，写入前调用）
func (r *heatRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.LocationHeatData{}).Error
}

// AggregateByLocations 按库位分组聚合时间窗口内的热度数据
// 单次 GROUP BY 查询覆盖整个热力图请求，避免逐库位往返
func (r *heatRepo) AggregateByLocations(ctx context.Context, locationIDs []uint, start, end time.Time) ([]HeatAggregate, error) {
	if len(locationIDs) == 0 {
		return nil, nil
	}

	var rows []HeatAggregate
	err := r.db.WithContext(ctx).
		Model(&model.LocationHeatData{}).
		Select(`location_id,
			COALESCE(SUM(pick_frequency), 0) AS total_pick_frequency,
			COALESCE(AVG(turnover_rate), 0)  AS avg_turnover_rate,
			COALESCE(SUM(inventory_qty), 0)  AS total_inventory_qty,
			COALESCE(SUM(heat_value), 0)     AS total_heat_value`).
		Where("location_id IN ? AND date >= ? AND date <= ?", locationIDs, start, end).
		Group("location_id").
		Scan(&rows).Error
	return rows, err
}
