package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Import ImportConfig `mapstructure:"import"`
	Risk   RiskConfig   `mapstructure:"risk"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	EquitySnapshot string `mapstructure:"equity_snapshot"`
	BackupFlush    string `mapstructure:"backup_flush"`
}

// SyncConfig configures the remote mirror. Sync stays disabled until all
// three of endpoint, access key and sync identifier are present.
type SyncConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SyncID    string        `mapstructure:"sync_id"`
	Debounce  time.Duration `mapstructure:"debounce"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the remote push/pull path should be enabled.
func (c SyncConfig) Configured() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SyncID) != ""
}

type ImportConfig struct {
	MaxRows     int   `mapstructure:"max_rows"`
	MaxBodySize int64 `mapstructure:"max_body_size"`
}

type RiskConfig struct {
	DefaultRiskPct float64 `mapstructure:"default_risk_pct"`
	MaxRiskPct     float64 `mapstructure:"max_risk_pct"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.equity_snapshot", "@every 1h")
	v.SetDefault("cron.backup_flush", "@every 6h")
	v.SetDefault("sync.endpoint", "")
	v.SetDefault("sync.access_key", "")
	v.SetDefault("sync.sync_id", "")
	v.SetDefault("sync.debounce", "3s")
	v.SetDefault("sync.timeout", "15s")
	v.SetDefault("import.max_rows", 10000)
	v.SetDefault("import.max_body_size", 8<<20)
	v.SetDefault("risk.default_risk_pct", 1.0)
	v.SetDefault("risk.max_risk_pct", 10.0)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
