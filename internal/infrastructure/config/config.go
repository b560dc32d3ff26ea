package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Store       StoreConfig     `mapstructure:"store"`
	AdFeed      AdFeedConfig    `mapstructure:"ad_feed"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig 持久層配置：file 為每個 profile 一個目錄的 CSV/JSON，
// redis 為每個 profile:table 一個 JSON 文件
type StoreConfig struct {
	Backend   string `mapstructure:"backend"` // file | redis
	DataDir   string `mapstructure:"data_dir"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

// AdFeedConfig 特價廣告資料來源配置
type AdFeedConfig struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RecommendConfig 推薦引擎可調參數
type RecommendConfig struct {
	MealShare      float64 `mapstructure:"meal_share"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	TopN           int     `mapstructure:"top_n"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時沿用現有環境變數）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("store.data_dir", "STORE_DATA_DIR")
	viper.BindEnv("store.redis_addr", "REDIS_ADDR")
	viper.BindEnv("store.redis_db", "REDIS_DB")
	viper.BindEnv("ad_feed.url", "AD_FEED_URL")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "smart-chef")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 持久層設定
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("store.redis_addr", "localhost:6379")
	viper.SetDefault("store.redis_db", 0)

	// 特價廣告來源設定
	viper.SetDefault("ad_feed.url", "")
	viper.SetDefault("ad_feed.timeout", "10s")
	viper.SetDefault("ad_feed.cache_ttl", "1h")

	// 推薦引擎設定
	viper.SetDefault("recommend.meal_share", 0.4)
	viper.SetDefault("recommend.match_threshold", 0.52)
	viper.SetDefault("recommend.top_n", 6)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 重複請求抑制視窗
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證持久層設定
	switch config.Store.Backend {
	case "file":
		if config.Store.DataDir == "" {
			return fmt.Errorf("store data dir is required for file backend")
		}
	case "redis":
		if config.Store.RedisAddr == "" {
			return fmt.Errorf("redis addr is required for redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", config.Store.Backend)
	}

	// 驗證推薦引擎設定
	if config.Recommend.MealShare <= 0 || config.Recommend.MealShare > 1 {
		return fmt.Errorf("invalid recommend meal share")
	}
	if config.Recommend.MatchThreshold <= 0 || config.Recommend.MatchThreshold > 1 {
		return fmt.Errorf("invalid recommend match threshold")
	}
	if config.Recommend.TopN <= 0 {
		return fmt.Errorf("invalid recommend top n")
	}

	return nil
}
