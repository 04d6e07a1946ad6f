package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider names accepted for geocoder.provider and router.provider.
const (
	ProviderNominatim = "nominatim"
	ProviderOpenRoute = "openroute"
	ProviderGoogle    = "google"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Locator   LocatorConfig   `mapstructure:"locator"`
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Router    RouterConfig    `mapstructure:"router"`
	Google    GoogleConfig    `mapstructure:"google"`
	Map       MapConfig       `mapstructure:"map"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`

	// ProxyHeader names the header carrying the client address when the
	// server runs behind a reverse proxy, e.g. X-Forwarded-For.
	ProxyHeader string `mapstructure:"proxy_header"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HTTPConfig applies to every outbound provider call.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LocatorConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

type GeocoderConfig struct {
	Provider    string        `mapstructure:"provider"`
	URL         string        `mapstructure:"url"`
	UserAgent   string        `mapstructure:"user_agent"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

type RouterConfig struct {
	Provider       string `mapstructure:"provider"`
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	DefaultProfile string `mapstructure:"default_profile"`
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type MapConfig struct {
	Zoom int           `mapstructure:"zoom"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// DatabaseConfig locates the route history database used by the watch and
// history commands. The API server does not need it.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from .env, an optional config file and
// environment variables, in increasing order of precedence.
func Load(service string) (*Config, error) {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.proxy_header", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("locator.url", "https://ipinfo.io")
	v.SetDefault("locator.token", "")
	v.SetDefault("geocoder.provider", ProviderNominatim)
	v.SetDefault("geocoder.url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "wayfinder")
	v.SetDefault("geocoder.min_interval", time.Second)
	v.SetDefault("router.provider", ProviderOpenRoute)
	v.SetDefault("router.url", "https://api.openrouteservice.org")
	v.SetDefault("router.api_key", "")
	v.SetDefault("router.default_profile", "driving")
	v.SetDefault("google.api_key", "")
	v.SetDefault("map.zoom", 13)
	v.SetDefault("map.ttl", time.Hour)
	v.SetDefault("nats.url", "")
	v.SetDefault("valkey.addr", "")
	v.SetDefault("database.url", "")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: WAYFINDER_ROUTER_API_KEY → router.api_key
	v.SetEnvPrefix("WAYFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings every binary shares. Provider settings are
// checked by ValidateProviders, which only the binaries that compute routes
// need to satisfy.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, "http.timeout must be positive")
	}

	return joinErrors(errs)
}

// ValidateProviders checks the locator, geocoder, router and map settings
// used to build the directions pipeline.
func (c *Config) ValidateProviders() error {
	var errs []string

	if c.Locator.URL == "" {
		errs = append(errs, "locator.url is required")
	}

	switch c.Geocoder.Provider {
	case ProviderNominatim:
		if c.Geocoder.URL == "" {
			errs = append(errs, "geocoder.url is required")
		}
		if c.Geocoder.UserAgent == "" {
			errs = append(errs, "geocoder.user_agent is required by the nominatim usage policy")
		}
	case ProviderGoogle:
		if c.Google.APIKey == "" {
			errs = append(errs, "google.api_key is required when geocoder.provider is google")
		}
	default:
		errs = append(errs, fmt.Sprintf("geocoder.provider must be %s or %s, got %q", ProviderNominatim, ProviderGoogle, c.Geocoder.Provider))
	}
	if c.Geocoder.MinInterval < 0 {
		errs = append(errs, "geocoder.min_interval must not be negative")
	}

	switch c.Router.Provider {
	case ProviderOpenRoute:
		if c.Router.URL == "" {
			errs = append(errs, "router.url is required")
		}
		if c.Router.APIKey == "" {
			errs = append(errs, "router.api_key is required (set WAYFINDER_ROUTER_API_KEY)")
		}
	case ProviderGoogle:
		if c.Google.APIKey == "" {
			errs = append(errs, "google.api_key is required when router.provider is google")
		}
	default:
		errs = append(errs, fmt.Sprintf("router.provider must be %s or %s, got %q", ProviderOpenRoute, ProviderGoogle, c.Router.Provider))
	}

	switch strings.ToLower(c.Router.DefaultProfile) {
	case "driving", "cycling", "walking":
	default:
		errs = append(errs, fmt.Sprintf("router.default_profile must be driving, cycling or walking, got %q", c.Router.DefaultProfile))
	}

	if c.Map.Zoom < 0 || c.Map.Zoom > 20 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 0-20, got %d", c.Map.Zoom))
	}
	if c.Map.TTL <= 0 {
		errs = append(errs, "map.ttl must be positive")
	}

	return joinErrors(errs)
}

func joinErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
}
