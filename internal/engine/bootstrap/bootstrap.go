// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"github.com/go-atrium/atrium/internal/engine/config"
	"github.com/go-atrium/atrium/internal/engine/router"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	HttpApp *fiber.App
	Logger  *zap.Logger
	AppConf *config.AppConfig

	companyService *service.CompanyService
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	companyService *service.CompanyService,
	appConf *config.AppConfig,
	db *gorm.DB,
	redisClient *redis.Client,
) (*App, func(), error) {
	httpApp := rt.Router()

	app := &App{
		HttpApp:        httpApp,
		Logger:         logger,
		AppConf:        appConf,
		companyService: companyService,
	}

	cleanup := func() {
		companyService.StopExpireSweeper()

		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis client", zap.Error(err))
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("failed to close database", zap.Error(err))
			}
		}
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), *config.AppConfig, error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return app, cleanup, app.AppConf, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	// 过期租户巡检
	if err := app.companyService.StartExpireSweeper(); err != nil {
		app.Logger.Error("failed to start company expire sweeper", zap.Error(err))
	}

	// 启动 HTTP 服务，返回的钩子会阻塞到收到退出信号
	httpClean := http.NewHttp(app.AppConf.Http, app.HttpApp)
	httpClean()

	cleanup()

	log.Info("server shutdown complete")
}
