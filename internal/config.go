package internal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server" env:", prefix=HTTP_"`
	Database      DatabaseConfig      `mapstructure:"database" env:", prefix=DB_"`
	Security      SecurityConfig      `mapstructure:"security" env:", prefix=SECURITY_"`
	Shifts        ShiftsConfig        `mapstructure:"shifts" env:", prefix=SHIFTS_"`
	Access        AccessConfig        `mapstructure:"access" env:", prefix=ACCESS_"`
	Export        ExportConfig        `mapstructure:"export" env:", prefix=EXPORT_"`
	Observability ObservabilityConfig `mapstructure:"observability" env:", prefix=OBS_"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"PORT, default=5000" validate:"required,min=1,max=65535"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS, default=*"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT, default=5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT, default=15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT, default=60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT, default=30s"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"MAX_OPEN_CONNS, default=10" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"MAX_IDLE_CONNS, default=5" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"CONN_MAX_LIFETIME, default=30m" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME, default=5m" validate:"required,min=1m"`
	Source          string        `mapstructure:"source" env:"SOURCE" validate:"required"`
}

type SecurityConfig struct {
	JWTSecret           string        `mapstructure:"jwt_secret" env:"JWT_SECRET" validate:"required,min=16"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration" env:"ACCESS_TOKEN_DURATION, default=1h" validate:"required,min=1m,max=24h"`
}

// ShiftsConfig selects the record shape accepted by the add-shift endpoint.
type ShiftsConfig struct {
	Schema string `mapstructure:"schema" env:"SCHEMA, default=itinerary" validate:"required,oneof=itinerary hours"`
}

type AccessConfig struct {
	EnforceOwnership bool `mapstructure:"enforce_ownership" env:"ENFORCE_OWNERSHIP, default=true"`
	// Routes overrides the capability of a route pattern, e.g. "/add-shift": "public".
	Routes map[string]string `mapstructure:"routes" env:"ROUTES" validate:"dive,keys,startswith=/,endkeys,oneof=public authenticated admin"`
}

type ExportConfig struct {
	Filename  string `mapstructure:"filename" env:"FILENAME, default=schichten.xlsx" validate:"required,endswith=.xlsx"`
	SheetName string `mapstructure:"sheet_name" env:"SHEET_NAME, default=Schichten" validate:"required,max=31"`
	Timezone  string `mapstructure:"timezone" env:"TIMEZONE, default=Local" validate:"required"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics" env:", prefix=METRICS_"`
	Logging LoggingConfig `mapstructure:"logging" env:", prefix=LOG_"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"ENABLED, default=true"`
	Path    string `mapstructure:"path" env:"PATH, default=/metrics" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL, default=info" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" env:"FORMAT, default=json" validate:"required,oneof=json text"`
}

// LoadConfigFromEnv builds the configuration from plain environment variables.
// PORT, DATABASE_URL and JWT_SECRET are honoured as used by container platforms.
func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	return loadConfigFromLookuper(ctx, envconfig.OsLookuper())
}

func loadConfigFromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	aliases := map[string]string{
		"PORT":         "HTTP_PORT",
		"DATABASE_URL": "DB_SOURCE",
		"JWT_SECRET":   "SECURITY_JWT_SECRET",
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MultiLookuper(l, aliasLookuper{base: l, aliases: aliases}),
	}); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}

// aliasLookuper resolves prefixed keys from their short platform names.
type aliasLookuper struct {
	base    envconfig.Lookuper
	aliases map[string]string
}

func (a aliasLookuper) Lookup(key string) (string, bool) {
	for short, full := range a.aliases {
		if full == key {
			return a.base.Lookup(short)
		}
	}
	return "", false
}

// ----------------- DEFAULTS -----------------

// ApplyDefaults fills zero values left by a partial config file.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.AllowedOrigins == "" {
		c.Server.AllowedOrigins = "*"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Security.AccessTokenDuration == 0 {
		c.Security.AccessTokenDuration = time.Hour
	}
	if c.Shifts.Schema == "" {
		c.Shifts.Schema = "itinerary"
	}
	if c.Export.Filename == "" {
		c.Export.Filename = "schichten.xlsx"
	}
	if c.Export.SheetName == "" {
		c.Export.SheetName = "Schichten"
	}
	if c.Export.Timezone == "" {
		c.Export.Timezone = "Local"
	}
	if c.Observability.Metrics.Path == "" {
		c.Observability.Metrics.Path = "/metrics"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "json"
	}
}

// ----------------- VALIDATION -----------------

var configValidator = validator.New()

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Export.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("export config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		for _, origin := range c.Origins() {
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

// Origins splits the comma separated allow list.
func (c *ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *ExportConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the timezone used to decide which month is "current".
func (c *ExportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
