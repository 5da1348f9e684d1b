package dto

// ── 仓库布局模块 DTO ──

// CreateWarehouseRequest 创建仓库请求
type CreateWarehouseRequest struct {
	Code        string `json:"code"        binding:"required,max=50"`
	Name        string `json:"name"        binding:"required,max=100"`
	Address     string `json:"address"     binding:"omitempty,max=255"`
	Description string `json:"description"`
}

// UpdateWarehouseRequest 更新仓库请求
type UpdateWarehouseRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=100"`
	Address     *string `json:"address"     binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateZoneRequest 创建库区请求
type CreateZoneRequest struct {
	WarehouseID uint   `json:"warehouse_id" binding:"required"`
	Code        string `json:"code"         binding:"required,max=50"`
	Name        string `json:"name"         binding:"required,max=100"`
	SortOrder   int    `json:"sort_order"`
}

// CreateAisleRequest 创建巷道请求
type CreateAisleRequest struct {
	ZoneID      uint   `json:"zone_id"      binding:"required"`
	Code        string `json:"code"         binding:"required,max=50"`
	Name        string `json:"name"         binding:"required,max=100"`
	YCoordinate int    `json:"y_coordinate"`
	SortOrder   int    `json:"sort_order"`
}

// CreateShelfRequest 创建货架请求（自动生成整面库位网格）
type CreateShelfRequest struct {
	AisleID     uint   `json:"aisle_id"     binding:"required"`
	Code        string `json:"code"         binding:"required,max=50"`
	Name        string `json:"name"         binding:"required,max=100"`
	ShelfType   string `json:"shelf_type"`
	Rows        int    `json:"rows"         binding:"omitempty,min=1,max=26"`
	Columns     int    `json:"columns"      binding:"omitempty,min=1"`
	Layers      int    `json:"layers"       binding:"omitempty,min=1"`
	XCoordinate int    `json:"x_coordinate"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateShelfLabelRequest 更新货架显示标识请求
type UpdateShelfLabelRequest struct {
	DisplayLabel string `json:"display_label" binding:"required,max=50"`
}

// ── 批量布局配置 ──

// LayoutShelfConfig 布局中的货架配置
type LayoutShelfConfig struct {
	Code        string `json:"code"       binding:"required"`
	Name        string `json:"name"       binding:"required"`
	ShelfType   string `json:"shelf_type"`
	Rows        int    `json:"rows"       binding:"omitempty,min=1,max=26"`
	Columns     int    `json:"columns"    binding:"omitempty,min=1"`
	Layers      int    `json:"layers"     binding:"omitempty,min=1"`
	XCoordinate *int   `json:"x_coordinate"`
}

// LayoutAisleConfig 布局中的巷道配置
type LayoutAisleConfig struct {
	Code        string              `json:"code" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	YCoordinate *int                `json:"y_coordinate"`
	Shelves     []LayoutShelfConfig `json:"shelves"`
}

// LayoutZoneConfig 布局中的库区配置
type LayoutZoneConfig struct {
	Code   string              `json:"code" binding:"required"`
	Name   string              `json:"name" binding:"required"`
	Aisles []LayoutAisleConfig `json:"aisles"`
}

// SetupLayoutRequest 批量设置仓库布局请求
// 仓库已存在时整体替换其下所有库区（级联删除巷道、货架、库位）
type SetupLayoutRequest struct {
	WarehouseCode string             `json:"warehouse_code" binding:"required"`
	WarehouseName string             `json:"warehouse_name" binding:"required"`
	Zones         []LayoutZoneConfig `json:"zones"          binding:"required"`
}

// ── 布局读取（画布编辑器） ──

// LayoutShelf 布局响应中的货架
type LayoutShelf struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ShelfType   string `json:"shelf_type"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	Layers      int    `json:"layers"`
	XCoordinate int    `json:"x_coordinate"`
}

// LayoutAisle 布局响应中的巷道
type LayoutAisle struct {
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	YCoordinate int           `json:"y_coordinate"`
	Shelves     []LayoutShelf `json:"shelves"`
}

// LayoutZone 布局响应中的库区
type LayoutZone struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Color  string        `json:"color"`
	Aisles []LayoutAisle `json:"aisles"`
}

// LayoutResponse 仓库完整布局响应
type LayoutResponse struct {
	Zones []LayoutZone `json:"zones"`
}
