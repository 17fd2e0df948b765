package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config 应用配置
type Config struct {
	Env         string        `toml:"env"`
	Port        string        `toml:"port"`
	DBDriver    string        `toml:"db_driver"`
	DatabaseURL string        `toml:"database_url"`
	AuthSecret  string        `toml:"auth_secret"`
	TokenExpiry time.Duration `toml:"-"`
	LogLevel    string        `toml:"log_level"`
	LogFormat   string        `toml:"log_format"`
	CacheTTL    time.Duration `toml:"-"`
	CacheSize   int           `toml:"cache_size"`

	// 文件中以字符串形式书写的时长，如 "30s"
	TokenExpiryRaw string `toml:"token_expiry"`
	CacheTTLRaw    string `toml:"cache_ttl"`
}

// AuthEnabled 是否对写接口启用 JWT 校验
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Load 加载配置：先读可选的 TOML 文件，再由环境变量覆盖
func Load() (*Config, error) {
	base, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", orDefault(base.DBDriver, "postgres")))

	dbURL := getEnv("DATABASE_URL", base.DatabaseURL)
	if dbURL == "" {
		dbURL = defaultDSN(driver)
	}

	expiryHours, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "0"))
	if err != nil || expiryHours < 0 {
		return nil, fmt.Errorf("TOKEN_EXPIRY_HOURS 无效: %q", os.Getenv("TOKEN_EXPIRY_HOURS"))
	}
	expiry := time.Duration(expiryHours) * time.Hour
	if expiry <= 0 {
		expiry = parseDuration(base.TokenExpiryRaw, 72*time.Hour)
	}

	cacheSize, err := strconv.Atoi(getEnv("CACHE_SIZE", strconv.Itoa(orDefaultInt(base.CacheSize, 256))))
	if err != nil {
		return nil, fmt.Errorf("CACHE_SIZE 无效: %w", err)
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", orDefault(base.Env, "development")),
		Port:        getEnv("PORT", orDefault(base.Port, "8000")),
		DBDriver:    driver,
		DatabaseURL: dbURL,
		AuthSecret:  getEnv("AUTH_SECRET", base.AuthSecret),
		TokenExpiry: expiry,
		LogLevel:    getEnv("LOG_LEVEL", orDefault(base.LogLevel, "info")),
		LogFormat:   getEnv("LOG_FORMAT", orDefault(base.LogFormat, "console")),
		CacheTTL:    parseDuration(getEnv("CACHE_TTL", base.CacheTTLRaw), 5*time.Minute),
		CacheSize:   cacheSize,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER 不支持: %q", c.DBDriver)
	}
	if c.CacheSize < 1 {
		return errors.New("CACHE_SIZE 必须大于 0")
	}
	if c.Env == "production" && c.AuthSecret == "" {
		fmt.Println("【警告】生产环境未设置 AUTH_SECRET，写接口没有鉴权。")
	}
	return nil
}

func loadFile(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("配置文件不存在: %s", path)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

func defaultDSN(driver string) string {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbName := getEnv("DB_NAME", "films")

	switch driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			dbUser, dbPass, dbHost, getEnv("DB_PORT", "3306"), dbName)
	case "sqlite":
		return getEnv("DB_PATH", "films.db")
	default:
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, getEnv("DB_PORT", "5432"), dbName, getEnv("DB_SSLMODE", "disable"))
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orDefaultInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
