package model

import "time"

// LocationHeatData 库位热度数据表
// 每个库位每个自然日至多一条记录，导入时按 (location_id, 日期) 执行 upsert
type LocationHeatData struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"                              json:"id"`
	LocationID    uint      `gorm:"not null;index:idx_heat_location;index:idx_heat_location_date,priority:1" json:"location_id"`
	Date          time.Time `gorm:"not null;index:idx_heat_date;index:idx_heat_location_date,priority:2"     json:"date"`
	PickFrequency int       `gorm:"not null;default:0" json:"pick_frequency"`
	TurnoverRate  float64   `gorm:"not null;default:0" json:"turnover_rate"`
	HeatValue     float64   `gorm:"not null;default:0" json:"heat_value"`
	InventoryQty  int       `gorm:"not null;default:0" json:"inventory_qty"`
	InboundQty    int       `gorm:"not null;default:0" json:"inbound_qty"`
	OutboundQty   int       `gorm:"not null;default:0" json:"outbound_qty"`
	BaseModel
}

// TableName 指定表名
func (LocationHeatData) TableName() string { return "location_heat_data" }
