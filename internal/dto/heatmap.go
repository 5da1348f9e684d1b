package dto

// ── 热力图模块 DTO ──

// HeatmapQuery 热力图查询参数
type HeatmapQuery struct {
	TimeRange string `form:"time_range,default=today"` // today / 7days / 30days / all / custom
	ShelfType string `form:"shelf_type"`                // 货架类型筛选（可选）
	StartDate string `form:"start_date"`                // 自定义起始日期（time_range=custom 时使用）
	EndDate   string `form:"end_date"`                  // 自定义结束日期（time_range=custom 时使用）
}

// LocationHeatItem 单个库位的热度数据
type LocationHeatItem struct {
	LocationID    uint    `json:"location_id"`
	LocationCode  string  `json:"location_code"`
	FullCode      string  `json:"full_code"`
	RowLabel      string  `json:"row_label"`
	ColumnNumber  int     `json:"column_number"`
	RowIndex      int     `json:"row_index"`
	ColumnIndex   int     `json:"column_index"`
	HeatValue     float64 `json:"heat_value"`
	PickFrequency int     `json:"pick_frequency"`
	TurnoverRate  float64 `json:"turnover_rate"`
	InventoryQty  int     `json:"inventory_qty"`
}

// ShelfHeatData 货架及其库位热度
type ShelfHeatData struct {
	ShelfID      uint               `json:"shelf_id"`
	ShelfCode    string             `json:"shelf_code"`
	ShelfName    string             `json:"shelf_name"`
	DisplayLabel *string            `json:"display_label,omitempty"`
	ShelfType    string             `json:"shelf_type"`
	XCoordinate  int                `json:"x_coordinate"`
	Rows         int                `json:"rows"`
	Columns      int                `json:"columns"`
	Layers       int                `json:"layers"`
	Locations    []LocationHeatItem `json:"locations"`
}

// AisleHeatData 巷道及其货架热度
type AisleHeatData struct {
	AisleID     uint            `json:"aisle_id"`
	AisleCode   string          `json:"aisle_code"`
	AisleName   string          `json:"aisle_name"`
	YCoordinate int             `json:"y_coordinate"`
	Shelves     []ShelfHeatData `json:"shelves"`
}

// HeatmapResponse 热力图数据响应
type HeatmapResponse struct {
	ZoneID    uint            `json:"zone_id"`
	ZoneCode  string          `json:"zone_code"`
	ZoneName  string          `json:"zone_name"`
	Aisles    []AisleHeatData `json:"aisles"`
	MinHeat   float64         `json:"min_heat"`
	MaxHeat   float64         `json:"max_heat"`
	TimeRange string          `json:"time_range"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// UpdateHeatRequest 单条热度数据更新请求
type UpdateHeatRequest struct {
	LocationID    uint    `json:"location_id"    binding:"required"`
	Date          string  `json:"date"           binding:"required"`
	PickFrequency int     `json:"pick_frequency" binding:"min=0"`
	TurnoverRate  float64 `json:"turnover_rate"`
	InventoryQty  int     `json:"inventory_qty"`
	InboundQty    int     `json:"inbound_qty"`
	OutboundQty   int     `json:"outbound_qty"`
}

// BatchHeatItem 批量热度更新中的单条数据（按完整库位编码定位）
type BatchHeatItem struct {
	LocationCode  string  `json:"location_code" binding:"required"`
	Date          string  `json:"date"          binding:"required"`
	PickFrequency int     `json:"pick_frequency"`
	TurnoverRate  float64 `json:"turnover_rate"`
	InventoryQty  int     `json:"inventory_qty"`
	InboundQty    int     `json:"inbound_qty"`
	OutboundQty   int     `json:"outbound_qty"`
}

// BatchUpdateHeatRequest 批量热度更新请求
type BatchUpdateHeatRequest struct {
	Items []BatchHeatItem `json:"items" binding:"required,dive"`
}
