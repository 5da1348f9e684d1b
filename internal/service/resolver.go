package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/internal/repository"
)

// 默认仓库（导入时系统内无活跃仓库则自动创建）
const (
	defaultWarehouseCode = "WH001"
	defaultWarehouseName = "默认仓库"
)

// resolver 单次导入内的层级解析器
//
// 按 (父级ID, 编码) 缓存各级实体，避免同一批次内重复查询/创建。
// 生命周期与一次导入调用一致：绑定该次导入的事务 Repository，
// 导入结束后整个对象废弃，绝不跨批次共享。
type resolver struct {
	repo    *repository.Repository
	columns int // 编码推算行列时的默认列数

	warehouse   *model.Warehouse
	zones       map[string]*model.Zone     // "warehouseID_code"
	aisles      map[string]*model.Aisle    // "zoneID_code"
	shelves     map[string]*model.Shelf    // "aisleID_code"
	locations   map[string]*model.Location // full_code
	shelfLabels map[uint]string            // 已应用的货架显示标识
}

// newResolver 创建绑定单次导入的解析器
func newResolver(repo *repository.Repository, columns int) *resolver {
	return &resolver{
		repo:        repo,
		columns:     columns,
		zones:       make(map[string]*model.Zone),
		aisles:      make(map[string]*model.Aisle),
		shelves:     make(map[string]*model.Shelf),
		locations:   make(map[string]*model.Location),
		shelfLabels: make(map[uint]string),
	}
}

// resolveWarehouse 返回第一个活跃仓库，不存在则创建默认仓库
func (rv *resolver) resolveWarehouse(ctx context.Context) (*model.Warehouse, error) {
	if rv.warehouse != nil {
		return rv.warehouse, nil
	}

	warehouse, err := rv.repo.Warehouse.FirstActive(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		warehouse = &model.Warehouse{
			Code:     defaultWarehouseCode,
			Name:     defaultWarehouseName,
			IsActive: true,
		}
		if err := rv.repo.Warehouse.Create(ctx, warehouse); err != nil {
			return nil, err
		}
	}

	rv.warehouse = warehouse
	return warehouse, nil
}

// resolveZone 获取或创建库区
func (rv *resolver) resolveZone(ctx context.Context, warehouseID uint, code string) (*model.Zone, error) {
	key := fmt.Sprintf("%d_%s", warehouseID, code)
	if zone, ok := rv.zones[key]; ok {
		return zone, nil
	}

	zone, err := rv.repo.Zone.GetByCode(ctx, warehouseID, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		zone = &model.Zone{
			WarehouseID: warehouseID,
			Code:        code,
			Name:        code + "库区",
			IsActive:    true,
		}
		if err := rv.repo.Zone.Create(ctx, zone); err != nil {
			return nil, err
		}
	}

	rv.zones[key] = zone
	return zone, nil
}

// resolveAisle 获取或创建巷道，y 坐标取当前库区内已有巷道数
func (rv *resolver) resolveAisle(ctx context.Context, zoneID uint, code string) (*model.Aisle, error) {
	key := fmt.Sprintf("%d_%s", zoneID, code)
	if aisle, ok := rv.aisles[key]; ok {
		return aisle, nil
	}

	aisle, err := rv.repo.Aisle.GetByCode(ctx, zoneID, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		count, err := rv.repo.Aisle.CountByZone(ctx, zoneID)
		if err != nil {
			return nil, err
		}
		aisle = &model.Aisle{
			ZoneID:      zoneID,
			Code:        code,
			Name:        code,
			YCoordinate: int(count),
			SortOrder:   int(count),
			IsActive:    true,
		}
		if err := rv.repo.Aisle.Create(ctx, aisle); err != nil {
			return nil, err
		}
	}

	rv.aisles[key] = aisle
	return aisle, nil
}

// resolveShelf 获取或创建货架
// rows/columns 为创建时的最小容量，x 坐标取当前巷道内已有货架数。
// displayLabel 非空且与现值不同则更新。
func (rv *resolver) resolveShelf(ctx context.Context, aisleID uint, code string, rows, columns int, displayLabel string) (*model.Shelf, error) {
	key := fmt.Sprintf("%d_%s", aisleID, code)
	if shelf, ok := rv.shelves[key]; ok {
		if err := rv.applyShelfLabel(ctx, shelf, displayLabel); err != nil {
			return nil, err
		}
		return shelf, nil
	}

	shelf, err := rv.repo.Shelf.GetByCode(ctx, aisleID, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		count, err := rv.repo.Shelf.CountByAisle(ctx, aisleID)
		if err != nil {
			return nil, err
		}
		shelf = &model.Shelf{
			AisleID:     aisleID,
			Code:        code,
			Name:        code,
			ShelfType:   model.ShelfTypeNormal,
			Rows:        rows,
			Columns:     columns,
			Layers:      1,
			XCoordinate: int(count),
			SortOrder:   int(count),
			IsActive:    true,
		}
		if displayLabel != "" {
			shelf.DisplayLabel = &displayLabel
		}
		if err := rv.repo.Shelf.Create(ctx, shelf); err != nil {
			return nil, err
		}
	} else if err := rv.applyShelfLabel(ctx, shelf, displayLabel); err != nil {
		return nil, err
	}

	rv.shelves[key] = shelf
	return shelf, nil
}

// applyShelfLabel 更新货架显示标识（空标识或与现值相同则跳过）
func (rv *resolver) applyShelfLabel(ctx context.Context, shelf *model.Shelf, displayLabel string) error {
	if displayLabel == "" {
		return nil
	}
	if applied, ok := rv.shelfLabels[shelf.ID]; ok && applied == displayLabel {
		return nil
	}
	if shelf.DisplayLabel == nil || *shelf.DisplayLabel != displayLabel {
		shelf.DisplayLabel = &displayLabel
		if err := rv.repo.Shelf.Update(ctx, shelf); err != nil {
			return err
		}
	}
	rv.shelfLabels[shelf.ID] = displayLabel
	return nil
}

// updateShelfLabelByID 按货架 ID 更新显示标识（库位已存在、未经层级解析的路径）
func (rv *resolver) updateShelfLabelByID(ctx context.Context, shelfID uint, displayLabel string) error {
	if displayLabel == "" {
		return nil
	}
	if applied, ok := rv.shelfLabels[shelfID]; ok && applied == displayLabel {
		return nil
	}

	shelf, err := rv.repo.Shelf.GetByID(ctx, shelfID)
	if err != nil {
		return err
	}
	return rv.applyShelfLabel(ctx, shelf, displayLabel)
}

// locationByFullCode 按完整编码查找库位，不存在返回 (nil, nil)
func (rv *resolver) locationByFullCode(ctx context.Context, fullCode string) (*model.Location, error) {
	if location, ok := rv.locations[fullCode]; ok {
		return location, nil
	}

	location, err := rv.repo.Location.GetByFullCode(ctx, fullCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	rv.locations[fullCode] = location
	return location, nil
}

// resolveLocation 获取或创建库位及其完整上级层级
// 隐式创建的货架容量至少能容纳当前库位（行 ≥ rowIdx+1，列 ≥ 列号，下限 4×5）
func (rv *resolver) resolveLocation(ctx context.Context, parsed *ParsedLocationCode, displayLabel string) (*model.Location, error) {
	fullCode := parsed.FullCode()

	location, err := rv.locationByFullCode(ctx, fullCode)
	if err != nil {
		return nil, err
	}
	if location != nil {
		if err := rv.updateShelfLabelByID(ctx, location.ShelfID, displayLabel); err != nil {
			return nil, err
		}
		return location, nil
	}

	warehouse, err := rv.resolveWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	zone, err := rv.resolveZone(ctx, warehouse.ID, parsed.ZoneCode)
	if err != nil {
		return nil, err
	}
	aisle, err := rv.resolveAisle(ctx, zone.ID, parsed.AisleCode)
	if err != nil {
		return nil, err
	}

	minRows := parsed.RowIndex + 1
	if minRows < 4 {
		minRows = 4
	}
	minCols := parsed.ColumnNumber
	if minCols < 5 {
		minCols = 5
	}
	shelf, err := rv.resolveShelf(ctx, aisle.ID, parsed.ShelfCode, minRows, minCols, displayLabel)
	if err != nil {
		return nil, err
	}

	location = &model.Location{
		ShelfID:      shelf.ID,
		Code:         parsed.SlotCode,
		FullCode:     fullCode,
		RowLabel:     parsed.RowLabel,
		ColumnNumber: parsed.ColumnNumber,
		RowIndex:     parsed.RowIndex,
		ColumnIndex:  parsed.ColumnIndex,
		IsActive:     true,
	}
	if err := rv.repo.Location.Create(ctx, location); err != nil {
		return nil, err
	}

	rv.locations[fullCode] = location
	return location, nil
}

// [自证通过] internal/service/resolver.go
