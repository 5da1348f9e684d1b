package service

import (
	"go.uber.org/zap"

	"warehouse-heatmap/backend/config"
	"warehouse-heatmap/backend/internal/repository"
	"warehouse-heatmap/backend/pkg/jwt"
	"warehouse-heatmap/backend/pkg/redis"
)

// Service 所有业务服务的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Warehouse WarehouseService
	Heatmap   HeatmapService
	Import    ImportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, jwtManager *jwt.Manager, rdb *redis.Client, cfg *config.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwtManager, rdb, log),
		User:      NewUserService(repo),
		Warehouse: NewWarehouseService(repo, cfg, log),
		Heatmap:   NewHeatmapService(repo, rdb, cfg, log),
		Import:    NewImportService(repo, rdb, cfg, log),
	}
}
