package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/internal/repository"
)

// ── 内存 Repository 桩实现 ──
//
// 业务服务测试不连数据库，聚合 Repository 由下列 map 存储的桩构成。
// Repository.Transaction 在无底层连接时直接执行回调，事务语义不在此验证。

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         &mockUserRepo{users: map[uint]*model.User{}},
		Warehouse:    &mockWarehouseRepo{warehouses: map[uint]*model.Warehouse{}},
		Zone:         &mockZoneRepo{zones: map[uint]*model.Zone{}},
		Aisle:        &mockAisleRepo{aisles: map[uint]*model.Aisle{}},
		Shelf:        &mockShelfRepo{shelves: map[uint]*model.Shelf{}},
		Location:     &mockLocationRepo{locations: map[uint]*model.Location{}},
		Heat:         &mockHeatRepo{records: map[uint]*model.LocationHeatData{}},
		ImportRecord: &mockImportRecordRepo{},
	}
}

// ── 用户 ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = &at
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

// ── 仓库 ──

type mockWarehouseRepo struct {
	warehouses map[uint]*model.Warehouse
	nextID     uint
}

func (m *mockWarehouseRepo) Create(_ context.Context, warehouse *model.Warehouse) error {
	m.nextID++
	warehouse.ID = m.nextID
	cp := *warehouse
	m.warehouses[warehouse.ID] = &cp
	return nil
}

func (m *mockWarehouseRepo) GetByID(_ context.Context, id uint) (*model.Warehouse, error) {
	w, ok := m.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *mockWarehouseRepo) GetByCode(_ context.Context, code string) (*model.Warehouse, error) {
	for _, w := range m.warehouses {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWarehouseRepo) FirstActive(_ context.Context) (*model.Warehouse, error) {
	var found *model.Warehouse
	for _, w := range m.warehouses {
		if !w.IsActive {
			continue
		}
		if found == nil || w.ID < found.ID {
			found = w
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *mockWarehouseRepo) List(_ context.Context, isActive bool) ([]model.Warehouse, error) {
	var out []model.Warehouse
	for _, w := range m.warehouses {
		if w.IsActive == isActive {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWarehouseRepo) Update(_ context.Context, warehouse *model.Warehouse) error {
	if _, ok := m.warehouses[warehouse.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *warehouse
	m.warehouses[warehouse.ID] = &cp
	return nil
}

// ── 库区 ──

type mockZoneRepo struct {
	zones  map[uint]*model.Zone
	nextID uint
}

func (m *mockZoneRepo) Create(_ context.Context, zone *model.Zone) error {
	m.nextID++
	zone.ID = m.nextID
	cp := *zone
	m.zones[zone.ID] = &cp
	return nil
}

func (m *mockZoneRepo) GetByID(_ context.Context, id uint) (*model.Zone, error) {
	z, ok := m.zones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *z
	return &cp, nil
}

func (m *mockZoneRepo) GetByCode(_ context.Context, warehouseID uint, code string) (*model.Zone, error) {
	for _, z := range m.zones {
		if z.WarehouseID == warehouseID && z.Code == code {
			cp := *z
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockZoneRepo) ListByWarehouse(_ context.Context, warehouseID uint, isActive bool) ([]model.Zone, error) {
	var out []model.Zone
	for _, z := range m.zones {
		if z.WarehouseID == warehouseID && z.IsActive == isActive {
			out = append(out, *z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockZoneRepo) DeleteByWarehouse(_ context.Context, warehouseID uint) error {
	for id, z := range m.zones {
		if z.WarehouseID == warehouseID {
			delete(m.zones, id)
		}
	}
	return nil
}

// ── 巷道 ──

type mockAisleRepo struct {
	aisles map[uint]*model.Aisle
	nextID uint
}

func (m *mockAisleRepo) Create(_ context.Context, aisle *model.Aisle) error {
	m.nextID++
	aisle.ID = m.nextID
	cp := *aisle
	m.aisles[aisle.ID] = &cp
	return nil
}

func (m *mockAisleRepo) GetByID(_ context.Context, id uint) (*model.Aisle, error) {
	a, ok := m.aisles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAisleRepo) GetByCode(_ context.Context, zoneID uint, code string) (*model.Aisle, error) {
	for _, a := range m.aisles {
		if a.ZoneID == zoneID && a.Code == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAisleRepo) ListByZone(_ context.Context, zoneID uint, isActive bool) ([]model.Aisle, error) {
	var out []model.Aisle
	for _, a := range m.aisles {
		if a.ZoneID == zoneID && a.IsActive == isActive {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockAisleRepo) CountByZone(_ context.Context, zoneID uint) (int64, error) {
	var n int64
	for _, a := range m.aisles {
		if a.ZoneID == zoneID {
			n++
		}
	}
	return n, nil
}

// ── 货架 ──

type mockShelfRepo struct {
	shelves map[uint]*model.Shelf
	nextID  uint
}

func (m *mockShelfRepo) Create(_ context.Context, shelf *model.Shelf) error {
	m.nextID++
	shelf.ID = m.nextID
	cp := *shelf
	m.shelves[shelf.ID] = &cp
	return nil
}

func (m *mockShelfRepo) GetByID(_ context.Context, id uint) (*model.Shelf, error) {
	s, ok := m.shelves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockShelfRepo) GetByCode(_ context.Context, aisleID uint, code string) (*model.Shelf, error) {
	for _, s := range m.shelves {
		if s.AisleID == aisleID && s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShelfRepo) ListByAisle(_ context.Context, aisleID uint, shelfType string, isActive bool) ([]model.Shelf, error) {
	var out []model.Shelf
	for _, s := range m.shelves {
		if s.AisleID != aisleID || s.IsActive != isActive {
			continue
		}
		if shelfType != "" && string(s.ShelfType) != shelfType {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockShelfRepo) CountByAisle(_ context.Context, aisleID uint) (int64, error) {
	var n int64
	for _, s := range m.shelves {
		if s.AisleID == aisleID {
			n++
		}
	}
	return n, nil
}

func (m *mockShelfRepo) Update(_ context.Context, shelf *model.Shelf) error {
	if _, ok := m.shelves[shelf.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *shelf
	m.shelves[shelf.ID] = &cp
	return nil
}

// ── 库位 ──

type mockLocationRepo struct {
	locations map[uint]*model.Location
	nextID    uint
}

func (m *mockLocationRepo) Create(_ context.Context, location *model.Location) error {
	m.nextID++
	location.ID = m.nextID
	cp := *location
	m.locations[location.ID] = &cp
	return nil
}

func (m *mockLocationRepo) CreateBatch(ctx context.Context, locations []model.Location) error {
	for i := range locations {
		if err := m.Create(ctx, &locations[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockLocationRepo) GetByFullCode(_ context.Context, fullCode string) (*model.Location, error) {
	for _, l := range m.locations {
		if l.FullCode == fullCode {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) ListByShelf(_ context.Context, shelfID uint, isActive bool) ([]model.Location, error) {
	var out []model.Location
	for _, l := range m.locations {
		if l.ShelfID == shelfID && l.IsActive == isActive {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowIndex != out[j].RowIndex {
			return out[i].RowIndex < out[j].RowIndex
		}
		return out[i].ColumnIndex < out[j].ColumnIndex
	})
	return out, nil
}

func (m *mockLocationRepo) ListSample(_ context.Context, limit int) ([]model.Location, error) {
	var out []model.Location
	for _, l := range m.locations {
		if len(out) >= limit {
			break
		}
		out = append(out, *l)
	}
	return out, nil
}

// ── 热度数据 ──

type mockHeatRepo struct {
	records map[uint]*model.LocationHeatData
	nextID  uint
}

func (m *mockHeatRepo) Create(_ context.Context, heat *model.LocationHeatData) error {
	m.nextID++
	heat.ID = m.nextID
	cp := *heat
	m.records[heat.ID] = &cp
	return nil
}

func (m *mockHeatRepo) Update(_ context.Context, heat *model.LocationHeatData) error {
	if _, ok := m.records[heat.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *heat
	m.records[heat.ID] = &cp
	return nil
}

func (m *mockHeatRepo) FindByLocationAndRange(_ context.Context, locationID uint, start, end time.Time) (*model.LocationHeatData, error) {
	for _, r := range m.records {
		if r.LocationID == locationID && !r.Date.Before(start) && !r.Date.After(end) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHeatRepo) DeleteAll(_ context.Context) error {
	m.records = map[uint]*model.LocationHeatData{}
	return nil
}

func (m *mockHeatRepo) AggregateByLocations(_ context.Context, locationIDs []uint, start, end time.Time) ([]repository.HeatAggregate, error) {
	wanted := make(map[uint]bool, len(locationIDs))
	for _, id := range locationIDs {
		wanted[id] = true
	}

	type acc struct {
		pick, inventory int
		turnoverSum     float64
		heat            float64
		n               int
	}
	byLoc := map[uint]*acc{}
	for _, r := range m.records {
		if !wanted[r.LocationID] || r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		a := byLoc[r.LocationID]
		if a == nil {
			a = &acc{}
			byLoc[r.LocationID] = a
		}
		a.pick += r.PickFrequency
		a.inventory += r.InventoryQty
		a.turnoverSum += r.TurnoverRate
		a.heat += r.HeatValue
		a.n++
	}

	var out []repository.HeatAggregate
	for id, a := range byLoc {
		out = append(out, repository.HeatAggregate{
			LocationID:    id,
			PickFrequency: a.pick,
			TurnoverRate:  a.turnoverSum / float64(a.n),
			InventoryQty:  a.inventory,
			HeatValue:     a.heat,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

// ── 导入记录 ──

type mockImportRecordRepo struct {
	records []model.ImportRecord
	nextID  uint
}

func (m *mockImportRecordRepo) Create(_ context.Context, record *model.ImportRecord) error {
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, *record)
	return nil
}

func (m *mockImportRecordRepo) ListRecent(_ context.Context, limit int) ([]model.ImportRecord, error) {
	out := make([]model.ImportRecord, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool { return out[i].ImportTime.After(out[j].ImportTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
