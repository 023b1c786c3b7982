package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Store backend 名稱
const (
	StoreBackendRedis = "redis"
	StoreBackendMySQL = "mysql"
)

// FindNearest 策略名稱
const (
	// NearestPolicyFirst 依插入順序回傳第一個半徑內的磚塊 (原始行為)
	NearestPolicyFirst = "first"
	// NearestPolicyClosest 回傳半徑內距離最近的磚塊
	NearestPolicyClosest = "closest"
)

// Config 總配置結構
type Config struct {
	App     AppConfig     `yaml:"app"`
	Economy EconomyConfig `yaml:"economy"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Host    HostConfig    `yaml:"host"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// EconomyConfig 經濟系統的可調參數。
// 預設值在 Load 時一次解析完成，後續程式碼不再做 fallback。
type EconomyConfig struct {
	CurrencyName           string  `yaml:"currency_name"`            // 預設 "Bucks"
	DefaultStartingBalance int64   `yaml:"default_starting_balance"` // 新玩家初始餘額 (整數幣值)，預設 0
	InteractRadius         float64 `yaml:"interact_radius"`          // 近接判定半徑，預設 3
	NearestPolicy          string  `yaml:"nearest_policy"`           // first | closest，預設 first
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // redis | mysql，預設 redis
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// HostConfig 遊戲主機 bridge 的連線設定
type HostConfig struct {
	URL   string `yaml:"url"`   // e.g., "ws://localhost:7777/plugin"
	Token string `yaml:"token"` // bridge 驗證用 token (選填)
}

// Load 讀取設定檔
// 優先讀取 config/config.yaml，然後使用環境變數覆蓋，最後補上預設值。
func Load(configPath ...string) (*Config, error) {
	// 1. 決定設定檔路徑
	dir := "./config"
	if len(configPath) > 0 {
		dir = configPath[0]
	}
	fullPath := filepath.Join(dir, "config.yaml")

	var cfg Config

	// 2. 讀取 YAML 檔案
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", fullPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml at %s: %w", fullPath, err)
	}

	// 3. 環境變數覆蓋 (Environment Variable Override)
	overrideWithEnv(&cfg)

	// 4. 補上預設值
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func overrideWithEnv(cfg *Config) {
	// App
	if env := os.Getenv(EnvAppEnv); env != "" {
		cfg.App.Env = env
	}

	// Store
	if val := os.Getenv(EnvStoreBackend); val != "" {
		cfg.Store.Backend = val
	}

	// Redis
	if val := os.Getenv(EnvRedisAddr); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv(EnvRedisPassword); val != "" {
		cfg.Redis.Password = val
	}

	// MySQL
	if val := os.Getenv(EnvMySQLHost); val != "" {
		cfg.MySQL.Host = val
	}
	if val := os.Getenv(EnvMySQLUser); val != "" {
		cfg.MySQL.User = val
	}
	if val := os.Getenv(EnvMySQLPassword); val != "" {
		cfg.MySQL.Password = val
	}
	if val := os.Getenv(EnvMySQLDB); val != "" {
		cfg.MySQL.DBName = val
	}
	if val := os.Getenv(EnvMySQLPort); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.MySQL.Port = p
		}
	}

	// Host bridge
	if val := os.Getenv(EnvHostURL); val != "" {
		cfg.Host.URL = val
	}
	if val := os.Getenv(EnvHostToken); val != "" {
		cfg.Host.Token = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Economy.CurrencyName == "" {
		cfg.Economy.CurrencyName = "Bucks"
	}
	if cfg.Economy.InteractRadius <= 0 {
		cfg.Economy.InteractRadius = 3
	}
	if cfg.Economy.NearestPolicy == "" {
		cfg.Economy.NearestPolicy = NearestPolicyFirst
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendRedis
	}
}

func (cfg *Config) validate() error {
	switch cfg.Store.Backend {
	case StoreBackendRedis, StoreBackendMySQL:
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	switch cfg.Economy.NearestPolicy {
	case NearestPolicyFirst, NearestPolicyClosest:
	default:
		return fmt.Errorf("unknown nearest policy %q", cfg.Economy.NearestPolicy)
	}
	if cfg.Economy.DefaultStartingBalance < 0 {
		return fmt.Errorf("default starting balance must not be negative")
	}
	return nil
}
