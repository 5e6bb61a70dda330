package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".portal"
	envPrefix  = "portal"

	// DefaultEndpoint is the Apps Script deployment the customer portal talks to.
	DefaultEndpoint = "https://script.google.com/macros/s/AKfycbyyZHLsF9KDuRynsuNjweUHqVnNDZ9ZFIiDqRTT23aQSyJ98bCK4I6J1-EBMdNKrDvu/exec"

	BackendTOML = "toml"
	BackendBolt = "bolt"
)

const (
	keyEndpoint      = "api.endpoint"
	keyTimeout       = "api.timeout"
	keyRateLimit     = "api.rate_limit"
	keyOrderAction   = "api.order_action"
	keySessionBack   = "session.backend"
	keySessionPath   = "session.path"
	keyLogLevel      = "log.level"
	keyLogFormat     = "log.format"
	keyWatchInterval = "watch.interval"
	keyClientID      = "client_id"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
	Watch   WatchConfig
	// ClientID comes from PORTAL_CLIENT_ID and plays the role of the portal link's clientId parameter.
	ClientID string
}

type APIConfig struct {
	Endpoint    string
	Timeout     time.Duration
	RateLimit   float64
	OrderAction domain.Action
}

type SessionConfig struct {
	Backend string
	Path    string
}

type LogConfig struct {
	Level  string
	Format string
}

type WatchConfig struct {
	Interval time.Duration
}

// Load reads ~/.portal/config.toml when present, then PORTAL_* environment variables.
func Load(cfg *viper.Viper, homeDir string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(keyEndpoint, DefaultEndpoint)
	cfg.SetDefault(keyTimeout, 30*time.Second)
	cfg.SetDefault(keyRateLimit, 0)
	cfg.SetDefault(keyOrderAction, string(domain.ActionCreateNewOrder))
	cfg.SetDefault(keySessionBack, BackendTOML)
	cfg.SetDefault(keySessionPath, "")
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyLogFormat, "console")
	cfg.SetDefault(keyWatchInterval, time.Minute)
	cfg.SetDefault(keyClientID, "")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		API: APIConfig{
			Endpoint:    strings.TrimSpace(cfg.GetString(keyEndpoint)),
			Timeout:     cfg.GetDuration(keyTimeout),
			RateLimit:   cfg.GetFloat64(keyRateLimit),
			OrderAction: domain.Action(strings.TrimSpace(cfg.GetString(keyOrderAction))),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(strings.TrimSpace(cfg.GetString(keySessionBack))),
			Path:    strings.TrimSpace(cfg.GetString(keySessionPath)),
		},
		Log: LogConfig{
			Level:  cfg.GetString(keyLogLevel),
			Format: cfg.GetString(keyLogFormat),
		},
		Watch: WatchConfig{
			Interval: cfg.GetDuration(keyWatchInterval),
		},
		ClientID: strings.TrimSpace(cfg.GetString(keyClientID)),
	}

	if loaded.Session.Path == "" {
		loaded.Session.Path = defaultSessionPath(dir, loaded.Session.Backend)
	}
	absPath, err := filepath.Abs(loaded.Session.Path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve session path: %w", err)
	}
	loaded.Session.Path = filepath.Clean(absPath)

	if err := loaded.Validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("parse api endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api endpoint must use http or https, got %q", c.API.Endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api endpoint %q has no host", c.API.Endpoint)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api rate limit must not be negative")
	}
	if !c.API.OrderAction.IsOrderAction() {
		return fmt.Errorf("unsupported order action %q", c.API.OrderAction)
	}
	switch c.Session.Backend {
	case BackendTOML, BackendBolt:
	default:
		return fmt.Errorf("unsupported session backend %q", c.Session.Backend)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}

	return nil
}

func defaultSessionPath(dir, backend string) string {
	if backend == BackendBolt {
		return filepath.Join(dir, "session.db")
	}

	return filepath.Join(dir, "session.toml")
}
