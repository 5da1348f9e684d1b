package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"warehouse-heatmap/backend/config"
	"warehouse-heatmap/backend/internal/dto"
	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/internal/repository"
)

// 仓库布局相关的业务错误
var (
	ErrWarehouseNotFound  = errors.New("仓库不存在")
	ErrWarehouseCodeTaken = errors.New("仓库编码已存在")
	ErrZoneCodeTaken      = errors.New("库区编码已存在")
	ErrAisleCodeTaken     = errors.New("巷道编码已存在")
	ErrAisleNotFound      = errors.New("巷道不存在")
	ErrShelfCodeTaken      = errors.New("货架编码已存在")
	ErrShelfNotFound       = errors.New("货架不存在")
	ErrInvalidShelfType    = errors.New("无效的货架类型")
	ErrShelfRowsOutOfRange = errors.New("货架行数超出 1-26 范围")
)

// normalizeShelfGrid 补齐货架网格默认值并校验行数上限（行标签 A-Z）
func normalizeShelfGrid(shelf *model.Shelf) error {
	if shelf.Rows <= 0 {
		shelf.Rows = 4
	}
	if shelf.Columns <= 0 {
		shelf.Columns = 5
	}
	if shelf.Layers <= 0 {
		shelf.Layers = 1
	}
	if shelf.Rows > len(rowLabels) {
		return fmt.Errorf("%w: %d", ErrShelfRowsOutOfRange, shelf.Rows)
	}
	return nil
}

// 库区在前端画布上的循环配色
var zoneColorPalette = []string{
	"#409eff", "#67c23a", "#e6a23c", "#f56c6c",
	"#909399", "#9c27b0", "#00bcd4", "#ff9800",
}

// WarehouseService 仓库布局管理服务接口
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, req *dto.CreateWarehouseRequest) (*model.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uint, req *dto.UpdateWarehouseRequest) (*model.Warehouse, error)

	CreateZone(ctx context.Context, req *dto.CreateZoneRequest) (*model.Zone, error)
	ListZones(ctx context.Context, warehouseID uint) ([]model.Zone, error)
	CreateAisle(ctx context.Context, req *dto.CreateAisleRequest) (*model.Aisle, error)
	// CreateShelf 创建货架并自动生成整面库位网格
	CreateShelf(ctx context.Context, req *dto.CreateShelfRequest) (*model.Shelf, error)
	UpdateShelfLabel(ctx context.Context, shelfID uint, displayLabel string) (*model.Shelf, error)

	// SetupLayout 批量设置仓库布局，已有库区整体替换
	SetupLayout(ctx context.Context, req *dto.SetupLayoutRequest) error
	// GetLayout 读取仓库完整布局（画布编辑器用）
	GetLayout(ctx context.Context, warehouseID uint) (*dto.LayoutResponse, error)

	ListLocations(ctx context.Context, shelfID uint) ([]model.Location, error)
	GetLocationByCode(ctx context.Context, fullCode string) (*model.Location, error)
}

type warehouseService struct {
	repo *repository.Repository
	cfg  *config.Config
	log  *zap.Logger
}

// NewWarehouseService 创建仓库布局服务
func NewWarehouseService(repo *repository.Repository, cfg *config.Config, log *zap.Logger) WarehouseService {
	return &warehouseService{repo: repo, cfg: cfg, log: log}
}

// ── 仓库 ──

func (s *warehouseService) CreateWarehouse(ctx context.Context, req *dto.CreateWarehouseRequest) (*model.Warehouse, error) {
	if _, err := s.repo.Warehouse.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrWarehouseCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	warehouse := &model.Warehouse{
		Code:        req.Code,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Warehouse.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	return s.repo.Warehouse.List(ctx, true)
}

func (s *warehouseService) UpdateWarehouse(ctx context.Context, id uint, req *dto.UpdateWarehouseRequest) (*model.Warehouse, error) {
	warehouse, err := s.repo.Warehouse.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		warehouse.Name = *req.Name
	}
	if req.Address != nil {
		warehouse.Address = *req.Address
	}
	if req.Description != nil {
		warehouse.Description = *req.Description
	}
	if req.IsActive != nil {
		warehouse.IsActive = *req.IsActive
	}

	if err := s.repo.Warehouse.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ── 库区 / 巷道 ──

func (s *warehouseService) CreateZone(ctx context.Context, req *dto.CreateZoneRequest) (*model.Zone, error) {
	if _, err := s.repo.Warehouse.GetByID(ctx, req.WarehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Zone.GetByCode(ctx, req.WarehouseID, req.Code); err == nil {
		return nil, ErrZoneCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	zone := &model.Zone{
		WarehouseID: req.WarehouseID,
		Code:        req.Code,
		Name:        req.Name,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.Zone.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

func (s *warehouseService) ListZones(ctx context.Context, warehouseID uint) ([]model.Zone, error) {
	return s.repo.Zone.ListByWarehouse(ctx, warehouseID, true)
}

func (s *warehouseService) CreateAisle(ctx context.Context, req *dto.CreateAisleRequest) (*model.Aisle, error) {
	if _, err := s.repo.Zone.GetByID(ctx, req.ZoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Aisle.GetByCode(ctx, req.ZoneID, req.Code); err == nil {
		return nil, ErrAisleCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	aisle := &model.Aisle{
		ZoneID:      req.ZoneID,
		Code:        req.Code,
		Name:        req.Name,
		YCoordinate: req.YCoordinate,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.Aisle.Create(ctx, aisle); err != nil {
		return nil, err
	}
	return aisle, nil
}

// ── 货架与库位网格 ──

func (s *warehouseService) CreateShelf(ctx context.Context, req *dto.CreateShelfRequest) (*model.Shelf, error) {
	aisle, err := s.repo.Aisle.GetByID(ctx, req.AisleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAisleNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Shelf.GetByCode(ctx, req.AisleID, req.Code); err == nil {
		return nil, ErrShelfCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shelfType := model.ShelfTypeNormal
	if req.ShelfType != "" {
		if !model.ValidShelfType(req.ShelfType) {
			return nil, ErrInvalidShelfType
		}
		shelfType = model.ShelfType(req.ShelfType)
	}

	shelf := &model.Shelf{
		AisleID:     req.AisleID,
		Code:        req.Code,
		Name:        req.Name,
		ShelfType:   shelfType,
		Rows:        req.Rows,
		Columns:     req.Columns,
		Layers:      req.Layers,
		XCoordinate: req.XCoordinate,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := normalizeShelfGrid(shelf); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Shelf.Create(ctx, shelf); err != nil {
			return err
		}
		return s.createLocationsForShelf(ctx, txRepo, aisle, shelf)
	})
	if err != nil {
		return nil, err
	}
	return shelf, nil
}

// createLocationsForShelf 为新建货架批量生成 rows×columns 库位网格
// 完整编码带仓库前缀（五段），与导入侧的「以最后四段为准」解码规则兼容
func (s *warehouseService) createLocationsForShelf(ctx context.Context, repo *repository.Repository, aisle *model.Aisle, shelf *model.Shelf) error {
	zone, err := repo.Zone.GetByID(ctx, aisle.ZoneID)
	if err != nil {
		return err
	}
	warehouse, err := repo.Warehouse.GetByID(ctx, zone.WarehouseID)
	if err != nil {
		return err
	}

	locations := make([]model.Location, 0, shelf.Rows*shelf.Columns)
	for rowIdx := 0; rowIdx < shelf.Rows; rowIdx++ {
		for colIdx := 0; colIdx < shelf.Columns; colIdx++ {
			seq := SequenceNumber(rowIdx, colIdx, shelf.Columns)
			code := SlotCode(zone.Code, seq)
			locations = append(locations, model.Location{
				ShelfID:      shelf.ID,
				Code:         code,
				FullCode:     BuildFullCode(warehouse.Code, zone.Code, aisle.Code, shelf.Code, code),
				RowLabel:     RowLabel(rowIdx),
				ColumnNumber: colIdx + 1,
				RowIndex:     rowIdx,
				ColumnIndex:  colIdx,
				IsActive:     true,
			})
		}
	}
	return repo.Location.CreateBatch(ctx, locations)
}

func (s *warehouseService) UpdateShelfLabel(ctx context.Context, shelfID uint, displayLabel string) (*model.Shelf, error) {
	shelf, err := s.repo.Shelf.GetByID(ctx, shelfID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, err
	}

	shelf.DisplayLabel = &displayLabel
	if err := s.repo.Shelf.Update(ctx, shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// ── 批量布局 ──

func (s *warehouseService) SetupLayout(ctx context.Context, req *dto.SetupLayoutRequest) error {
	return s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		warehouse, err := txRepo.Warehouse.GetByCode(ctx, req.WarehouseCode)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			warehouse = &model.Warehouse{
				Code:     req.WarehouseCode,
				Name:     req.WarehouseName,
				IsActive: true,
			}
			if err := txRepo.Warehouse.Create(ctx, warehouse); err != nil {
				return err
			}
		} else {
			// 重建布局前清掉旧库区，巷道/货架/库位级联删除
			if err := txRepo.Zone.DeleteByWarehouse(ctx, warehouse.ID); err != nil {
				return err
			}
		}

		for zi, zc := range req.Zones {
			zone := &model.Zone{
				WarehouseID: warehouse.ID,
				Code:        zc.Code,
				Name:        zc.Name,
				SortOrder:   zi,
				IsActive:    true,
			}
			if err := txRepo.Zone.Create(ctx, zone); err != nil {
				return err
			}

			for ai, ac := range zc.Aisles {
				y := ai
				if ac.YCoordinate != nil {
					y = *ac.YCoordinate
				}
				aisle := &model.Aisle{
					ZoneID:      zone.ID,
					Code:        ac.Code,
					Name:        ac.Name,
					YCoordinate: y,
					SortOrder:   ai,
					IsActive:    true,
				}
				if err := txRepo.Aisle.Create(ctx, aisle); err != nil {
					return err
				}

				for si, sc := range ac.Shelves {
					shelfType := model.ShelfTypeNormal
					if sc.ShelfType != "" {
						if !model.ValidShelfType(sc.ShelfType) {
							return fmt.Errorf("%w: %s", ErrInvalidShelfType, sc.ShelfType)
						}
						shelfType = model.ShelfType(sc.ShelfType)
					}
					x := si
					if sc.XCoordinate != nil {
						x = *sc.XCoordinate
					}
					shelf := &model.Shelf{
						AisleID:     aisle.ID,
						Code:        sc.Code,
						Name:        sc.Name,
						ShelfType:   shelfType,
						Rows:        sc.Rows,
						Columns:     sc.Columns,
						Layers:      sc.Layers,
						XCoordinate: x,
						SortOrder:   si,
						IsActive:    true,
					}
					if err := normalizeShelfGrid(shelf); err != nil {
						return err
					}
					if err := txRepo.Shelf.Create(ctx, shelf); err != nil {
						return err
					}
					if err := s.createLocationsForShelf(ctx, txRepo, aisle, shelf); err != nil {
						return err
					}
				}
			}
		}

		s.log.Info("仓库布局已重建",
			zap.String("warehouse_code", req.WarehouseCode),
			zap.Int("zones", len(req.Zones)))
		return nil
	})
}

func (s *warehouseService) GetLayout(ctx context.Context, warehouseID uint) (*dto.LayoutResponse, error) {
	if _, err := s.repo.Warehouse.GetByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}

	zones, err := s.repo.Zone.ListByWarehouse(ctx, warehouseID, true)
	if err != nil {
		return nil, err
	}

	resp := &dto.LayoutResponse{Zones: make([]dto.LayoutZone, 0, len(zones))}
	for zi, zone := range zones {
		lz := dto.LayoutZone{
			Code:  zone.Code,
			Name:  zone.Name,
			Color: zoneColorPalette[zi%len(zoneColorPalette)],
		}

		aisles, err := s.repo.Aisle.ListByZone(ctx, zone.ID, true)
		if err != nil {
			return nil, err
		}
		for _, aisle := range aisles {
			la := dto.LayoutAisle{
				Code:        aisle.Code,
				Name:        aisle.Name,
				YCoordinate: aisle.YCoordinate,
			}
			shelves, err := s.repo.Shelf.ListByAisle(ctx, aisle.ID, "", true)
			if err != nil {
				return nil, err
			}
			for _, shelf := range shelves {
				la.Shelves = append(la.Shelves, dto.LayoutShelf{
					Code:        shelf.Code,
					Name:        shelf.Name,
					ShelfType:   string(shelf.ShelfType),
					Rows:        shelf.Rows,
					Columns:     shelf.Columns,
					Layers:      shelf.Layers,
					XCoordinate: shelf.XCoordinate,
				})
			}
			lz.Aisles = append(lz.Aisles, la)
		}

		resp.Zones = append(resp.Zones, lz)
	}
	return resp, nil
}

// ── 库位查询 ──

func (s *warehouseService) ListLocations(ctx context.Context, shelfID uint) ([]model.Location, error) {
	return s.repo.Location.ListByShelf(ctx, shelfID, true)
}

func (s *warehouseService) GetLocationByCode(ctx context.Context, fullCode string) (*model.Location, error) {
	location, err := s.repo.Location.GetByFullCode(ctx, fullCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return location, nil
}
