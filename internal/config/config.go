package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// store
	Store            string `toml:"store"`
	SqlitePath       string `toml:"sqlite_path"`
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresPassword string `toml:"-"`
	// telemetry
	TracingEnabled        bool   `toml:"tracing_enabled"`
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// goals and analytics
	Timezone             string `toml:"timezone"`
	WeeklyCaloriesGoal   int    `toml:"weekly_calories_goal"`
	WaterGlassesGoal     int    `toml:"water_glasses_goal"`
	StreakLookbackDays   int    `toml:"streak_lookback_days"`
	ComplianceWindowDays int    `toml:"compliance_window_days"`
	DefaultListLimit     int    `toml:"default_list_limit"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the TOML file, picks the section for env, then applies
// overrides from the environment (and a .env file, if present).
func Load(env, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load .env file: %s", err)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"MYNIU_HOST":             &c.Host,
		"MYNIU_LOG_LEVEL":        &c.LogLevel,
		"MYNIU_LOGS_PATH":        &c.LogsPath,
		"MYNIU_STORE":            &c.Store,
		"MYNIU_SQLITE_PATH":      &c.SqlitePath,
		"MYNIU_POSTGRES_HOST":    &c.PostgresHost,
		"MYNIU_POSTGRES_PORT":    &c.PostgresPort,
		"MYNIU_POSTGRES_DB_NAME": &c.PostgresDBName,
		"MYNIU_POSTGRES_USER":    &c.PostgresUser,
		"MYNIU_POSTGRES_PASS":    &c.PostgresPassword,
		"MYNIU_TIMEZONE":         &c.Timezone,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("MYNIU_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse MYNIU_PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("MYNIU_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Store == "" {
		c.Store = StoreSqlite
	}
	if c.SqlitePath == "" {
		c.SqlitePath = "./data/myniu.db"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "myniu"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WeeklyCaloriesGoal == 0 {
		c.WeeklyCaloriesGoal = 1500
	}
	if c.WaterGlassesGoal == 0 {
		c.WaterGlassesGoal = 6
	}
	if c.StreakLookbackDays == 0 {
		c.StreakLookbackDays = 365
	}
	if c.ComplianceWindowDays == 0 {
		c.ComplianceWindowDays = 7
	}
	if c.DefaultListLimit == 0 {
		c.DefaultListLimit = 200
	}
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreSqlite, StorePostgres:
	default:
		return fmt.Errorf("unknown store kind: %s", c.Store)
	}

	positive := map[string]int{
		"port":                   c.Port,
		"weekly_calories_goal":   c.WeeklyCaloriesGoal,
		"water_glasses_goal":     c.WaterGlassesGoal,
		"streak_lookback_days":   c.StreakLookbackDays,
		"compliance_window_days": c.ComplianceWindowDays,
		"default_list_limit":     c.DefaultListLimit,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}
