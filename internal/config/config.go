package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// Prober
	ProberAPIURL   string `mapstructure:"prober_api_url" validate:"required,url"`
	ProberInterval int    `mapstructure:"prober_interval_seconds" validate:"min=1"`
	MetricsPort    int    `mapstructure:"prober_metrics_port" validate:"min=1,max=65535"`
	// 0 means no client timeout
	ProberTimeoutMS int `mapstructure:"prober_http_timeout_ms" validate:"min=0"`
	// comma-separated in env; empty leaves /metrics open
	MetricsAPIKeys []string `mapstructure:"metrics_api_keys"`

	// SLA evaluator
	PrometheusURL string `mapstructure:"prometheus_api_url" validate:"required,url"`
	SLAInterval   int    `mapstructure:"sla_interval_seconds" validate:"min=1"`

	// Relational store
	DBDriver    string `mapstructure:"db_driver" validate:"oneof=postgres sqlite memory"`
	DBHost      string `mapstructure:"db_host" validate:"required_if=DBDriver postgres"`
	DBPort      int    `mapstructure:"db_port" validate:"min=1,max=65535"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name" validate:"required"`
	DBAdminName string `mapstructure:"db_admin_name" validate:"required"`
	DBSSLMode   string `mapstructure:"db_sslmode"`
	SQLitePath  string `mapstructure:"sqlite_path" validate:"required_if=DBDriver sqlite"`

	// Logs
	LogDir   string `mapstructure:"log_dir"` // empty means stdout
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

var defaults = map[string]any{
	"prober_api_url":          "http://oncall:8080",
	"prober_interval_seconds": 30,
	"prober_metrics_port":     1238,
	"prober_http_timeout_ms":  0,
	"metrics_api_keys":        "",
	"prometheus_api_url":      "http://prometheus-service:9090",
	"sla_interval_seconds":    60,
	"db_driver":               "postgres",
	"db_host":                 "oncall-postgres",
	"db_port":                 5432,
	"db_user":                 "postgres",
	"db_password":             "",
	"db_name":                 "sla",
	"db_admin_name":           "postgres",
	"db_sslmode":              "disable",
	"sqlite_path":             "sla.db",
	"log_dir":                 "",
	"log_level":               "info",
}

// Load reads defaults, then the optional config file at path, then the
// environment (PROBER_API_URL, DB_HOST, ...). The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config_file")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		ProberAPIURL:    strings.TrimRight(v.GetString("prober_api_url"), "/"),
		ProberInterval:  v.GetInt("prober_interval_seconds"),
		MetricsPort:     v.GetInt("prober_metrics_port"),
		ProberTimeoutMS: v.GetInt("prober_http_timeout_ms"),
		MetricsAPIKeys:  splitCSV(v.GetString("metrics_api_keys")),
		PrometheusURL:   strings.TrimRight(v.GetString("prometheus_api_url"), "/"),
		SLAInterval:     v.GetInt("sla_interval_seconds"),
		DBDriver:        strings.ToLower(v.GetString("db_driver")),
		DBHost:          v.GetString("db_host"),
		DBPort:          v.GetInt("db_port"),
		DBUser:          v.GetString("db_user"),
		DBPassword:      v.GetString("db_password"),
		DBName:          v.GetString("db_name"),
		DBAdminName:     v.GetString("db_admin_name"),
		DBSSLMode:       v.GetString("db_sslmode"),
		SQLitePath:      v.GetString("sqlite_path"),
		LogDir:          v.GetString("log_dir"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv is Load without a config file path; CONFIG_FILE is still honoured.
func FromEnv() (Config, error) {
	return Load("")
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) ProbeInterval() time.Duration {
	return time.Duration(c.ProberInterval) * time.Second
}

func (c Config) EvalInterval() time.Duration {
	return time.Duration(c.SLAInterval) * time.Second
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProberTimeoutMS) * time.Millisecond
}

func (c Config) MetricsAddr() string {
	return ":" + strconv.Itoa(c.MetricsPort)
}

// PostgresDSN builds a connection URL for the given database name.
func (c Config) PostgresDSN(database string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + database,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else if c.DBUser != "" {
		u.User = url.User(c.DBUser)
	}
	if c.DBSSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(c.DBSSLMode)
	}
	return u.String()
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
