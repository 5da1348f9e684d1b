package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warehouse-heatmap/backend/config"
	"warehouse-heatmap/backend/internal/api/handler"
	"warehouse-heatmap/backend/internal/api/middleware"
	"warehouse-heatmap/backend/internal/model"
	"warehouse-heatmap/backend/pkg/jwt"
	"warehouse-heatmap/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(int64(cfg.Import.MaxUploadMB) << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（登录无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// 以下路由均需登录
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// 用户管理（仅管理员）
			users := authorized.Group("/users")
			users.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				users.POST("", h.User.Create)
				users.GET("", h.User.List)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// 仓库布局
			authorized.GET("/warehouses", h.Warehouse.ListWarehouses)
			authorized.GET("/warehouses/:id/zones", h.Warehouse.ListZones)
			authorized.GET("/warehouses/:id/layout", h.Warehouse.GetLayout)
			authorized.GET("/shelves/:id/locations", h.Warehouse.ListLocations)
			authorized.GET("/locations/:full_code", h.Warehouse.GetLocationByCode)

			// 布局写操作（仅管理员）
			layoutAdmin := authorized.Group("")
			layoutAdmin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				layoutAdmin.POST("/warehouses", h.Warehouse.CreateWarehouse)
				layoutAdmin.PUT("/warehouses/:id", h.Warehouse.UpdateWarehouse)
				layoutAdmin.POST("/warehouses/layout", h.Warehouse.SetupLayout)
				layoutAdmin.POST("/zones", h.Warehouse.CreateZone)
				layoutAdmin.POST("/aisles", h.Warehouse.CreateAisle)
				layoutAdmin.POST("/shelves", h.Warehouse.CreateShelf)
				layoutAdmin.PATCH("/shelves/:id/label", h.Warehouse.UpdateShelfLabel)
			}

			// 热力图
			heatmap := authorized.Group("/heatmap")
			{
				heatmap.GET("/zones/:id", h.Heatmap.GetHeatmap)
				heatmap.PUT("/heat", h.Heatmap.UpdateHeat)
				heatmap.PUT("/heat/batch", h.Heatmap.BatchUpdateHeat)
			}

			// 数据导入
			importGroup := authorized.Group("/import")
			{
				importGroup.POST("", h.Import.Upload)
				importGroup.GET("/history", h.Import.History)
				importGroup.GET("/template/excel", h.Import.TemplateExcel)
				importGroup.GET("/template/csv", h.Import.TemplateCSV)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
