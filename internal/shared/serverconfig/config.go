package serverconfig

import (
	"os"

	"MergeIsland/internal/shared/config"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	envConfigPath        = "MERGE_CONFIG"
	envPrefix            = "MERGE"
)

const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
	StorageMySQL   = "mysql"
	StorageLocal   = "local"
)

func resolvePath(path string) string {
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path == "" {
		path = defaultConfigRelPath
	}
	return path
}

// Load 读取服务配置：path 为空时依次尝试 MERGE_CONFIG 与 configs/conf.yml（向上查找）。
func Load(path string) Config {
	var conf Config
	config.Load(resolvePath(path), &conf, config.WithEnvPrefix(envPrefix))
	conf.applyDefaults()
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", conf.JWTSecret)
	}
	return conf
}

func (c *Config) applyDefaults() {
	if c.HTTPServer.Host == "" {
		c.HTTPServer.Host = "0.0.0.0"
	}
	if c.HTTPServer.Port == 0 {
		c.HTTPServer.Port = 8080
	}
	b := &c.Board
	if b.Size <= 0 {
		b.Size = 7
	}
	if b.CatalogPath == "" {
		b.CatalogPath = "configs/item_catalog.yml"
	}
	if b.Storage == "" {
		b.Storage = StorageMemory
	}
	if b.ProductionPolicy == "" {
		b.ProductionPolicy = "click"
	}
	if b.TickMillis <= 0 {
		b.TickMillis = 500
	}
	if b.FlushMillis <= 0 {
		b.FlushMillis = 3000
	}
	if b.AskTimeoutMillis <= 0 {
		b.AskTimeoutMillis = 3000
	}
	if c.Local.AppName == "" {
		c.Local.AppName = "merge_island"
	}
}

// Watch 监听配置文件，变更后把补过默认值的新配置交给 fn。只用于 log 级别等可热更的项。
func Watch(path string, fn func(conf Config, err error)) error {
	resolved, err := config.Resolve(resolvePath(path))
	if err != nil {
		return err
	}
	var conf Config
	return config.LoadFile(resolved, &conf, config.WithEnvPrefix(envPrefix), config.WithWatch(func(err error) {
		next := conf
		next.applyDefaults()
		fn(next, err)
	}))
}
