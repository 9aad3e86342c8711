package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Events     EventsConfig     `yaml:"events"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
	RateLimit          RateLimit     `yaml:"rate_limit"`
}

// RateLimit は単項 RPC の流量制限です。RPS が 0 の場合は無効です。
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LoggingConfig はプロセスログの設定です。
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ComplianceConfig は期限・曜日ルールの既定値です。DB の設定行が無い場合に使われます。
type ComplianceConfig struct {
	AsoValidityDays          int    `yaml:"aso_validity_days"`
	IntegrationValidityDays  int    `yaml:"integration_validity_days"`
	PresenceConfirmationDays int    `yaml:"presence_confirmation_days"`
	ScheduleWeekdays         string `yaml:"schedule_weekdays"`
	ExpiryWarningDays        int    `yaml:"expiry_warning_days"`
	TimeZone                 string `yaml:"time_zone"`
}

// EventsConfig は監査イベント配信の設定です。
type EventsConfig struct {
	Enabled           bool          `yaml:"enabled"`
	NATSURL           string        `yaml:"nats_url"`
	Subject           string        `yaml:"subject"`
	ConnectTimeout    time.Duration `yaml:"-"`
	ConnectTimeoutRaw string        `yaml:"connect_timeout"`
	MaxReconnects     int           `yaml:"max_reconnects"`
	RetryMaxAttempts  int           `yaml:"retry_max_attempts"`
	BreakerEnabled    bool          `yaml:"breaker_enabled"`
}

// MetricsConfig は Prometheus エンドポイントの設定です。
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
	Path       string `yaml:"path"`
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv は機密値や環境依存の値を環境変数から上書きします。
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SERVER_LISTEN_ADDR":  &c.Server.ListenAddr,
		"DATABASE_HOST":       &c.Database.Host,
		"DATABASE_USER":       &c.Database.User,
		"DATABASE_PASSWORD":   &c.Database.Password,
		"DATABASE_NAME":       &c.Database.Name,
		"LOG_LEVEL":           &c.Logging.Level,
		"NATS_URL":            &c.Events.NATSURL,
		"METRICS_LISTEN_ADDR": &c.Metrics.ListenAddr,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("DATABASE_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DATABASE_PORT: %w", err)
		}
		c.Database.Port = port
	}
	return nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	shutdown, err := parseDurationAllowEmpty(c.Server.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdown == 0 {
		shutdown = 10 * time.Second
	}
	c.Server.ShutdownTimeout = shutdown
	if c.Server.RateLimit.RPS < 0 {
		return fmt.Errorf("config: server.rate_limit.rps must not be negative")
	}
	if c.Server.RateLimit.RPS > 0 && c.Server.RateLimit.Burst <= 0 {
		c.Server.RateLimit.Burst = int(c.Server.RateLimit.RPS)
		if c.Server.RateLimit.Burst < 1 {
			c.Server.RateLimit.Burst = 1
		}
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Logging.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Compliance.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Events.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Metrics.validateAndNormalize(); err != nil {
		return err
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LoggingConfig) validateAndNormalize() error {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	switch l.Format {
	case "":
		l.Format = "json"
	case "json", "console":
	default:
		return fmt.Errorf("config: logging.format must be json or console")
	}
	return nil
}

func (c *ComplianceConfig) validateAndNormalize() error {
	if c.AsoValidityDays < 0 || c.IntegrationValidityDays < 0 || c.PresenceConfirmationDays < 0 || c.ExpiryWarningDays < 0 {
		return fmt.Errorf("config: compliance day counts must not be negative")
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("config: compliance.time_zone: %w", err)
	}
	return nil
}

func (e *EventsConfig) validateAndNormalize() error {
	if !e.Enabled {
		return nil
	}
	if e.NATSURL == "" {
		return fmt.Errorf("config: events.nats_url must be set when events are enabled")
	}
	if e.Subject == "" {
		e.Subject = "compliance.approvals"
	}
	timeout, err := parseDurationAllowEmpty(e.ConnectTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: events.connect_timeout: %w", err)
	}
	e.ConnectTimeout = timeout
	return nil
}

func (m *MetricsConfig) validateAndNormalize() error {
	if !m.Enabled {
		return nil
	}
	if m.ListenAddr == "" {
		return fmt.Errorf("config: metrics.listen_addr must be set when metrics are enabled")
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
	if !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("config: metrics.path must start with /")
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報は URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Settings は既定の期限・曜日ルールを settings.Settings に変換します。0 の項目は組み込みの既定値を使います。
func (c ComplianceConfig) Settings() (settings.Settings, error) {
	out := settings.Default()
	if c.AsoValidityDays > 0 {
		out.AsoValidityDays = c.AsoValidityDays
	}
	if c.IntegrationValidityDays > 0 {
		out.IntegrationValidityDays = c.IntegrationValidityDays
	}
	if c.PresenceConfirmationDays > 0 {
		out.PresenceConfirmationDays = c.PresenceConfirmationDays
	}
	if c.ExpiryWarningDays > 0 {
		out.ExpiryWarningDays = c.ExpiryWarningDays
	}
	if c.ScheduleWeekdays != "" {
		days, err := settings.ParseWeekdays(c.ScheduleWeekdays)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("config: compliance.schedule_weekdays: %w", err)
		}
		out.ScheduleWeekdays = days
	}
	if c.TimeZone != "" {
		loc, err := time.LoadLocation(c.TimeZone)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("config: compliance.time_zone: %w", err)
		}
		out.Location = loc
	}
	if err := out.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("config: compliance: %w", err)
	}
	return out, nil
}
