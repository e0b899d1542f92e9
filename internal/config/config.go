package config

import (
	"fmt"
	"strings"

	"github.com/bombershop-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Printful PrintfulConfig `mapstructure:"printful"`
	Snipcart SnipcartConfig `mapstructure:"snipcart"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig 管理端 JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// PrintfulConfig Printful API 配置
type PrintfulConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	StoreID   string `mapstructure:"store_id"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// SnipcartConfig Snipcart 回调配置
type SnipcartConfig struct {
	WebhookToken string `mapstructure:"webhook_token"`
}

// SyncConfig 目录同步引擎配置
type SyncConfig struct {
	PageSize               int `mapstructure:"page_size"`                // 远端分页大小
	MaxProducts            int `mapstructure:"max_products"`             // 单次同步商品上限（0 表示不限制）
	BatchSize              int `mapstructure:"batch_size"`               // 处理批次大小
	RunTimeoutSeconds      int `mapstructure:"run_timeout_seconds"`      // 整轮同步超时
	BatchTimeoutSeconds    int `mapstructure:"batch_timeout_seconds"`    // 单批次超时
	ItemRetries            int `mapstructure:"item_retries"`             // 单商品重试次数
	ItemRetryDelayMS       int `mapstructure:"item_retry_delay_ms"`      // 单商品重试间隔
	FetchRetries           int `mapstructure:"fetch_retries"`            // 拉取阶段重试次数
	FetchRetryDelayMS      int `mapstructure:"fetch_retry_delay_ms"`     // 拉取阶段重试间隔
	CleanupMarginSeconds   int `mapstructure:"cleanup_margin_seconds"`   // 清理阶段所需剩余时间
	MaxDeletionsPerRun     int `mapstructure:"max_deletions_per_run"`    // 单轮最大删除数
	BreakerThreshold       int `mapstructure:"breaker_threshold"`        // 熔断失败阈值
	BreakerTimeoutSeconds  int `mapstructure:"breaker_timeout_seconds"`  // 熔断单次调用超时
	BreakerCooldownSeconds int `mapstructure:"breaker_cooldown_seconds"` // 熔断冷却时间
}

// CatalogConfig 目录本地配置
type CatalogConfig struct {
	EnhancementsFile string `mapstructure:"enhancements_file"` // 静态增强配置文件路径
	CacheTTLSeconds  int    `mapstructure:"cache_ttl_seconds"` // 公共目录缓存 TTL
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "bombershop.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/bombershop.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "bs")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default": 10,
		"sync":    1,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("security.login_rate_limit.window_seconds", 300)
	viper.SetDefault("security.login_rate_limit.max_attempts", 5)
	viper.SetDefault("security.login_rate_limit.block_seconds", 900)
	viper.SetDefault("printful.base_url", "https://api.printful.com")
	viper.SetDefault("printful.api_key", "")
	viper.SetDefault("printful.store_id", "")
	viper.SetDefault("printful.timeout_ms", 15000)
	viper.SetDefault("snipcart.webhook_token", "")
	viper.SetDefault("sync.page_size", 20)
	viper.SetDefault("sync.max_products", 0)
	viper.SetDefault("sync.batch_size", 5)
	viper.SetDefault("sync.run_timeout_seconds", 300)
	viper.SetDefault("sync.batch_timeout_seconds", 60)
	viper.SetDefault("sync.item_retries", 2)
	viper.SetDefault("sync.item_retry_delay_ms", 500)
	viper.SetDefault("sync.fetch_retries", 3)
	viper.SetDefault("sync.fetch_retry_delay_ms", 2000)
	viper.SetDefault("sync.cleanup_margin_seconds", 30)
	viper.SetDefault("sync.max_deletions_per_run", 25)
	viper.SetDefault("sync.breaker_threshold", 3)
	viper.SetDefault("sync.breaker_timeout_seconds", 30)
	viper.SetDefault("sync.breaker_cooldown_seconds", 120)
	viper.SetDefault("catalog.enhancements_file", "./enhancements.yml")
	viper.SetDefault("catalog.cache_ttl_seconds", 60)

	// 环境变量支持
	viper.AutomaticEnv()                                   // 自动读取环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将 . 替换为 _ (例如 server.port -> SERVER_PORT)

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}
