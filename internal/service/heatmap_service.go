package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"warehouse-heatmap/backend/config"
	"warehouse-heatmap/backend/internal/dto"
	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/internal/repository"
	"warehouse-heatmap/backend/pkg/redis"
)

// ErrZoneNotFound 库区不存在或未启用
var ErrZoneNotFound = errors.New("库区不存在")

// ErrLocationNotFound 库位不存在
var ErrLocationNotFound = errors.New("库位不存在")

// HeatmapService 热力图聚合与热度维护服务接口
type HeatmapService interface {
	// GetHeatmap 按库区聚合热力图数据
	GetHeatmap(ctx context.Context, zoneID uint, query *dto.HeatmapQuery) (*dto.HeatmapResponse, error)
	// UpdateHeat 更新单个库位单日的热度数据
	UpdateHeat(ctx context.Context, req *dto.UpdateHeatRequest) error
	// BatchUpdateHeat 按完整库位编码批量更新，未知编码静默跳过，返回实际更新条数
	BatchUpdateHeat(ctx context.Context, req *dto.BatchUpdateHeatRequest) (int, error)
}

type heatmapService struct {
	repo *repository.Repository
	rdb  *redis.Client
	cfg  *config.Config
	log  *zap.Logger
}

// NewHeatmapService 创建热力图服务
func NewHeatmapService(repo *repository.Repository, rdb *redis.Client, cfg *config.Config, log *zap.Logger) HeatmapService {
	return &heatmapService{repo: repo, rdb: rdb, cfg: cfg, log: log}
}

// ── 时间窗口解析 ──

// 「全部」窗口的闭区间边界
var (
	allRangeStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)
	allRangeEnd   = time.Date(2100, 12, 31, 23, 59, 59, 0, time.Local)
)

// resolveTimeWindow 把查询的时间范围参数解析为闭区间 [start, end]
//
//	today   — 今天整天
//	7days   — 7 天前起，终点放宽到未来 30 天，宽松日期导入产生的未来数据也可见
//	30days  — 30 天前起，终点同上
//	custom  — start_date/end_date，缺省分别取 30 天前与今天
//	all 及无法识别的取值 — 固定的极宽区间
func resolveTimeWindow(timeRange, startDate, endDate string, now time.Time) (time.Time, time.Time) {
	todayStart, todayEnd := DayBounds(now)
	_, futureEnd := DayBounds(now.AddDate(0, 0, 30))

	switch timeRange {
	case "today":
		return todayStart, todayEnd
	case "7days":
		return todayStart.AddDate(0, 0, -7), futureEnd
	case "30days":
		return todayStart.AddDate(0, 0, -30), futureEnd
	case "custom":
		start := todayStart.AddDate(0, 0, -30)
		end := todayEnd
		if t, err := ParseDate(startDate); err == nil {
			start, _ = DayBounds(t)
		}
		if t, err := ParseDate(endDate); err == nil {
			_, end = DayBounds(t)
		}
		return start, end
	default:
		return allRangeStart, allRangeEnd
	}
}

// ── 热力图聚合 ──

func (s *heatmapService) GetHeatmap(ctx context.Context, zoneID uint, query *dto.HeatmapQuery) (*dto.HeatmapResponse, error) {
	start, end := resolveTimeWindow(query.TimeRange, query.StartDate, query.EndDate, time.Now())

	cacheKey := fmt.Sprintf("zone:%d:%s:%s:%s:%s",
		zoneID, query.TimeRange, query.ShelfType,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if s.rdb != nil {
		if cached, err := s.rdb.GetCache(ctx, cacheKey); err == nil && cached != "" {
			var resp dto.HeatmapResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	zone, err := s.repo.Zone.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	if !zone.IsActive {
		return nil, ErrZoneNotFound
	}

	resp, err := s.assembleHeatmap(ctx, zone, query.ShelfType, start, end)
	if err != nil {
		return nil, err
	}
	resp.TimeRange = query.TimeRange
	resp.StartDate = start.Format("2006-01-02")
	resp.EndDate = end.Format("2006-01-02")

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.SetCache(ctx, cacheKey, string(raw), s.cfg.Heat.CacheTTL); err != nil {
				s.log.Warn("热力图缓存写入失败", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// assembleHeatmap 组装库区的巷道/货架/库位层级并填充聚合热度
//
// 层级遍历收集全部库位后，用一次分组聚合查询取回窗口内的热度，
// 再回填到各库位。无货架的巷道不进入结果。
func (s *heatmapService) assembleHeatmap(ctx context.Context, zone *model.Zone, shelfType string, start, end time.Time) (*dto.HeatmapResponse, error) {
	aisles, err := s.repo.Aisle.ListByZone(ctx, zone.ID, true)
	if err != nil {
		return nil, err
	}

	type slot struct {
		aisleIdx, shelfIdx, locIdx int
	}
	var (
		aisleData   []dto.AisleHeatData
		locationIDs []uint
		slotByLoc   = make(map[uint]slot)
	)

	for _, aisle := range aisles {
		shelves, err := s.repo.Shelf.ListByAisle(ctx, aisle.ID, shelfType, true)
		if err != nil {
			return nil, err
		}
		if len(shelves) == 0 {
			continue
		}

		ad := dto.AisleHeatData{
			AisleID:     aisle.ID,
			AisleCode:   aisle.Code,
			AisleName:   aisle.Name,
			YCoordinate: aisle.YCoordinate,
		}

		for _, shelf := range shelves {
			locations, err := s.repo.Location.ListByShelf(ctx, shelf.ID, true)
			if err != nil {
				return nil, err
			}

			sd := dto.ShelfHeatData{
				ShelfID:      shelf.ID,
				ShelfCode:    shelf.Code,
				ShelfName:    shelf.Name,
				DisplayLabel: shelf.DisplayLabel,
				ShelfType:    string(shelf.ShelfType),
				XCoordinate:  shelf.XCoordinate,
				Rows:         shelf.Rows,
				Columns:      shelf.Columns,
				Layers:       shelf.Layers,
				Locations:    make([]dto.LocationHeatItem, 0, len(locations)),
			}
			for _, loc := range locations {
				sd.Locations = append(sd.Locations, dto.LocationHeatItem{
					LocationID:   loc.ID,
					LocationCode: loc.Code,
					FullCode:     loc.FullCode,
					RowLabel:     loc.RowLabel,
					ColumnNumber: loc.ColumnNumber,
					RowIndex:     loc.RowIndex,
					ColumnIndex:  loc.ColumnIndex,
				})
				locationIDs = append(locationIDs, loc.ID)
				slotByLoc[loc.ID] = slot{
					aisleIdx: len(aisleData),
					shelfIdx: len(ad.Shelves),
					locIdx:   len(sd.Locations) - 1,
				}
			}
			ad.Shelves = append(ad.Shelves, sd)
		}

		aisleData = append(aisleData, ad)
	}

	aggregates, err := s.repo.Heat.AggregateByLocations(ctx, locationIDs, start, end)
	if err != nil {
		return nil, err
	}
	for _, agg := range aggregates {
		pos, ok := slotByLoc[agg.LocationID]
		if !ok {
			continue
		}
		item := &aisleData[pos.aisleIdx].Shelves[pos.shelfIdx].Locations[pos.locIdx]
		item.PickFrequency = agg.PickFrequency
		item.TurnoverRate = agg.TurnoverRate
		item.InventoryQty = agg.InventoryQty
		item.HeatValue = agg.HeatValue
		// 热度值为零但有拣货频率的历史数据，用频率兜底
		if item.HeatValue == 0 && item.PickFrequency > 0 {
			item.HeatValue = float64(item.PickFrequency)
		}
	}

	resp := &dto.HeatmapResponse{
		ZoneID:   zone.ID,
		ZoneCode: zone.Code,
		ZoneName: zone.Name,
		Aisles:   aisleData,
	}

	first := true
	for _, ad := range aisleData {
		for _, sd := range ad.Shelves {
			for _, item := range sd.Locations {
				if first {
					resp.MinHeat = item.HeatValue
					resp.MaxHeat = item.HeatValue
					first = false
					continue
				}
				if item.HeatValue < resp.MinHeat {
					resp.MinHeat = item.HeatValue
				}
				if item.HeatValue > resp.MaxHeat {
					resp.MaxHeat = item.HeatValue
				}
			}
		}
	}

	return resp, nil
}

// ── 热度维护 ──

func (s *heatmapService) UpdateHeat(ctx context.Context, req *dto.UpdateHeatRequest) error {
	day, err := ParseDate(req.Date)
	if err != nil {
		return err
	}

	heat := &model.LocationHeatData{
		LocationID:    req.LocationID,
		Date:          day,
		PickFrequency: req.PickFrequency,
		TurnoverRate:  req.TurnoverRate,
		HeatValue:     float64(req.PickFrequency),
		InventoryQty:  req.InventoryQty,
		InboundQty:    req.InboundQty,
		OutboundQty:   req.OutboundQty,
	}
	if err := upsertHeat(ctx, s.repo.Heat, heat); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *heatmapService) BatchUpdateHeat(ctx context.Context, req *dto.BatchUpdateHeatRequest) (int, error) {
	updated := 0
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, item := range req.Items {
			location, err := txRepo.Location.GetByFullCode(ctx, item.LocationCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			day, err := ParseDate(item.Date)
			if err != nil {
				continue
			}

			heat := &model.LocationHeatData{
				LocationID:    location.ID,
				Date:          day,
				PickFrequency: item.PickFrequency,
				TurnoverRate:  item.TurnoverRate,
				HeatValue:     float64(item.PickFrequency),
				InventoryQty:  item.InventoryQty,
				InboundQty:    item.InboundQty,
				OutboundQty:   item.OutboundQty,
			}
			if err := upsertHeat(ctx, txRepo.Heat, heat); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.invalidateCache(ctx)
	}
	return updated, nil
}

func (s *heatmapService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateHeatmapCache(ctx); err != nil {
		s.log.Warn("热力图缓存失效失败", zap.Error(err))
	}
}
