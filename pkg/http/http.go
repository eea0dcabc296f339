package http

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
)

/**
 * @file: http.go
 * @description: http server
 */

type Http struct {
	Host            string
	Port            int
	Mode            string
	ContextPath     string `mapstructure:"contextPath"`
	PProf           bool
	ExposeMetrics   bool
	AccessLog       bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
	Tenant          Tenant
}

type TLS struct {
	CertFile string
	KeyFile  string
}

type Auth struct {
	SecretKey      string
	Header         string        // 默认 Authorization
	Scheme         string        // 默认 Bearer
	AccessExpire   time.Duration // 分钟
	RefreshExpire  time.Duration // 分钟
	RedisKeyPrefix string
}

// Tenant 租户解析策略
type Tenant struct {
	// AllowUnresolved 为 false 时，租户无法解析的请求会被拒绝。
	// 默认拒绝：宁可挡掉请求，也不能让数据越过租户边界。
	AllowUnresolved bool `mapstructure:"allowUnresolved"`
}

// HeaderName returns the configured bearer header name.
func (a Auth) HeaderName() string {
	if a.Header == "" {
		return "Authorization"
	}
	return a.Header
}

// SchemePrefix returns the configured scheme prefix, trailing space included.
func (a Auth) SchemePrefix() string {
	if a.Scheme == "" {
		return "Bearer "
	}
	return a.Scheme
}

// NewHttp 启动 fiber 服务并返回优雅退出钩子
func NewHttp(cfg Http, app *fiber.App) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	go func() {
		fmt.Printf("[Init] http server start at: %s\n", addr)
		var err error
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			err = app.ListenTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = app.Listen(addr)
		}
		if err != nil {
			panic(err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return func() {
		<-sc
		fmt.Println("[Shutdown] http server shutting down...")

		timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			fmt.Printf("[Error] server shutdown error: %v\n", err)
		} else {
			fmt.Println("[Shutdown] http server shut down gracefully.")
		}
	}
}
