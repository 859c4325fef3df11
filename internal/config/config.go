package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalidConfig возвращается, если после загрузки конфигурация невалидна
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса.
// Значения читаются из TOML-файла, затем переопределяются переменными окружения DETAILING_*.
type Config struct {
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Database   DatabaseConfig   `toml:"database"`
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Migrations MigrationsConfig `toml:"migrations"`
	Client     ClientConfig     `toml:"client"`
}

type LogsConfig struct {
	File  string `toml:"file" env:"DETAILING_LOG_FILE"`
	Level string `toml:"level" env:"DETAILING_LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"DETAILING_METRICS_ENABLED"`
	ServiceName string `toml:"service_name" env:"DETAILING_METRICS_SERVICE_NAME"`
	Path        string `toml:"path" env:"DETAILING_METRICS_PATH"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DETAILING_DB_HOST"`
	Port            int    `toml:"port" env:"DETAILING_DB_PORT"`
	User            string `toml:"user" env:"DETAILING_DB_USER"`
	Password        string `toml:"password" env:"DETAILING_DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DETAILING_DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DETAILING_DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DETAILING_DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DETAILING_DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DETAILING_DB_CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате URL (нужна golang-migrate)
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port" env:"DETAILING_HTTP_PORT"`
	BasePath        string   `toml:"base_path" env:"DETAILING_BASE_PATH"`
	ReadTimeout     int      `toml:"read_timeout" env:"DETAILING_READ_TIMEOUT"`
	WriteTimeout    int      `toml:"write_timeout" env:"DETAILING_WRITE_TIMEOUT"`
	IdleTimeout     int      `toml:"idle_timeout" env:"DETAILING_IDLE_TIMEOUT"`
	ShutdownTimeout int      `toml:"shutdown_timeout" env:"DETAILING_SHUTDOWN_TIMEOUT"`
	CORSOrigins     []string `toml:"cors_origins" env:"DETAILING_CORS_ORIGINS" env-separator:","`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret" env:"DETAILING_JWT_SECRET"`
	TokenTTLHours int    `toml:"token_ttl_hours" env:"DETAILING_TOKEN_TTL_HOURS"`
	Issuer        string `toml:"issuer" env:"DETAILING_JWT_ISSUER"`
	// Учетная запись администратора, создаваемая при первом запуске,
	// если в системе нет ни одного ADMIN. Пустой пароль отключает создание.
	AdminUsername string `toml:"admin_username" env:"DETAILING_ADMIN_USERNAME"`
	AdminPassword string `toml:"admin_password" env:"DETAILING_ADMIN_PASSWORD"`
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled" env:"DETAILING_MIGRATIONS_ENABLED"`
}

// ClientConfig настройки клиентского ядра (detailingctl)
type ClientConfig struct {
	APIURL      string `toml:"api_url" env:"DETAILING_API_URL"`
	Timeout     int    `toml:"timeout" env:"DETAILING_API_TIMEOUT"` // секунды
	SessionFile string `toml:"session_file" env:"DETAILING_SESSION_FILE"`
}

// Load читает конфигурацию из TOML-файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "detailing-service",
			Path:        "/metrics",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			BasePath:        "/detailing/api",
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
			Issuer:        "smc-detailing",
			AdminUsername: "admin",
		},
		Migrations: MigrationsConfig{Enabled: true},
		Client: ClientConfig{
			APIURL:      "http://localhost:8080/detailing/api",
			Timeout:     10,
			SessionFile: ".detailing-session.json",
		},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		problems = append(problems, "auth.jwt_secret must be at least 16 characters")
	}
	if c.Auth.TokenTTLHours <= 0 {
		problems = append(problems, "auth.token_ttl_hours must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
