//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-atrium/atrium/internal/engine/bootstrap"
	"github.com/go-atrium/atrium/internal/engine/config"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/internal/engine/router"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/database"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/**
 * @file: wire.go
 * @description: dependency injection definitions
 */

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 基础设施层
		infraProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}

// infraProviderSet 基础设施层 ProviderSet
var infraProviderSet = wire.NewSet(
	provideLogger,
	provideDatabase,
	provideGormDB,
	provideRedisClient,
	provideUniversalClient,
	provideCache,
)

func provideLogger(conf *log.Conf) (*zap.Logger, error) {
	return log.NewLog(conf)
}

func provideDatabase(cfg *database.Database) (*gorm.DB, error) {
	return database.NewDatabase(*cfg)
}

func provideGormDB(db *gorm.DB) database.IDatabase {
	return database.NewGormDB(db)
}

func provideRedisClient(cfg *cache.Redis) (*redis.Client, error) {
	return cache.NewRedis(*cfg)
}

func provideUniversalClient(client *redis.Client) redis.UniversalClient {
	return client
}

func provideCache(client *redis.Client) cache.ICache {
	return cache.NewRedisCache(client)
}
