package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DriverMemory はプロセス内メモリのリポジトリを使用します。
	DriverMemory = "memory"
	// DriverPostgres は PostgreSQL のリポジトリを使用します。
	DriverPostgres = "postgres"

	defaultShutdownTimeout = 10 * time.Second
	defaultApplicationName = "codex-minhex"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Repository RepositoryConfig `yaml:"repository"`
	Database   DatabaseConfig   `yaml:"database"`
}

// ServerConfig は gRPC / HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	HTTPAddr           string        `yaml:"http_addr"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// LogConfig はロガーに関する設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RepositoryConfig はユーザーリポジトリの実装選択です。
type RepositoryConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	ApplicationName    string        `yaml:"application_name"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PathFromEnv は CONFIG_PATH 環境変数、未設定なら assets/local.yaml を返します。
func PathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Log.validateAndNormalize(); err != nil {
		return err
	}

	c.Repository.Driver = strings.ToLower(strings.TrimSpace(c.Repository.Driver))
	switch c.Repository.Driver {
	case "", DriverMemory:
		c.Repository.Driver = DriverMemory
		// マイグレーション用に database が書かれていれば検証する
		if c.Database.Host != "" {
			return c.Database.validateAndNormalize()
		}
	case DriverPostgres:
		db := &c.Database
		if err := db.validateAndNormalize(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: repository.driver %q is not supported", c.Repository.Driver)
	}

	return nil
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	if s.HTTPAddr == "" {
		return fmt.Errorf("config: server.http_addr must be set")
	}

	timeout, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	s.ShutdownTimeout = timeout

	return nil
}

func (l *LogConfig) validateAndNormalize() error {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	switch l.Level {
	case "":
		l.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not supported", l.Level)
	}

	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	switch l.Format {
	case "":
		l.Format = "json"
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is not supported", l.Format)
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
	if d.ApplicationName == "" {
		d.ApplicationName = defaultApplicationName
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

// DSN は pgx / golang-migrate 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
