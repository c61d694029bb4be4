package config

import (
	"fmt"
	"strings"
	"sync"

	"team-scheduler-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	GoogleAPI GoogleAPIConfig `mapstructure:"google_api"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// SchedulerConfig carries the availability search policy. All slot math runs
// in the single configured timezone; requests cannot override it.
type SchedulerConfig struct {
	BusinessHoursStart int    `mapstructure:"business_hours_start"`
	BusinessHoursEnd   int    `mapstructure:"business_hours_end"`
	SlotCap            int    `mapstructure:"slot_cap"`
	Timezone           string `mapstructure:"timezone"`
	CompanyDomain      string `mapstructure:"company_domain"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads configuration from environment variables (optionally seeded from
// a .env file) and makes it available via Get/GetSafe.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "team_scheduler")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry_hours", 24)

	v.SetDefault("google_api.client_id", "")
	v.SetDefault("google_api.client_secret", "")
	v.SetDefault("google_api.redirect_url", "")

	v.SetDefault("scheduler.business_hours_start", constants.DefaultBusinessHoursStart)
	v.SetDefault("scheduler.business_hours_end", constants.DefaultBusinessHoursEnd)
	v.SetDefault("scheduler.slot_cap", constants.DefaultSlotCap)
	v.SetDefault("scheduler.timezone", "")
	v.SetDefault("scheduler.company_domain", "")

	v.SetDefault("log.level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Scheduler.BusinessHoursStart >= cfg.Scheduler.BusinessHoursEnd {
		return nil, fmt.Errorf("invalid business hours: start %d must be before end %d",
			cfg.Scheduler.BusinessHoursStart, cfg.Scheduler.BusinessHoursEnd)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()

	return &cfg, nil
}

// Get returns the loaded config; panics if Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, false
	}
	return instance, true
}

// SetForTesting replaces the global config. Tests only.
func SetForTesting(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
