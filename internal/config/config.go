package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type Config struct {
	Mode           string        `mapstructure:"mode"`
	Port           int           `mapstructure:"port"`
	LogLevel       string        `mapstructure:"log_level"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	MaxRoomPlayers int           `mapstructure:"max_room_players"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateInterval   time.Duration `mapstructure:"rate_interval"`
	DevOrigins     []string      `mapstructure:"dev_origins"`
	ReleaseOrigins []string      `mapstructure:"release_origins"`
	NATSURL        string        `mapstructure:"nats_url"`
	NATSSubject    string        `mapstructure:"nats_subject"`
}

// Load reads config/config.<CONFIG_ENV>.yaml, dev by default.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads the given yaml file on top of the defaults. A missing file
// is not an error. DICECELLS_* environment variables override both.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetDefault("mode", ModeRelease)
	v.SetDefault("port", 3000)
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "5s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("max_room_players", 6)
	v.SetDefault("rate_limit", 20)
	v.SetDefault("rate_interval", "1s")
	v.SetDefault("dev_origins", []string{"http://localhost:5173"})
	v.SetDefault("release_origins", []string{})
	v.SetDefault("nats_url", "")
	v.SetDefault("nats_subject", "dicecells.rooms")

	v.SetEnvPrefix("DICECELLS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Bool("nats", cfg.NATSURL != "").Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeDebug && c.Mode != ModeRelease {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeDebug, ModeRelease, c.Mode))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.PingPeriod <= 0 || c.PongWait <= c.PingPeriod {
		errs = append(errs, fmt.Errorf("pong_wait (%s) must exceed ping_period (%s)", c.PongWait, c.PingPeriod))
	}
	if c.WriteWait <= 0 {
		errs = append(errs, errors.New("write_wait must be positive"))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, errors.New("send_buffer must be positive"))
	}
	if c.MaxRoomPlayers < 2 {
		errs = append(errs, fmt.Errorf("max_room_players must be at least 2, got %d", c.MaxRoomPlayers))
	}
	if c.RateLimit <= 0 || c.RateInterval <= 0 {
		errs = append(errs, errors.New("rate_limit and rate_interval must be positive"))
	}
	for _, o := range append(slices.Clone(c.DevOrigins), c.ReleaseOrigins...) {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			errs = append(errs, fmt.Errorf("origin %q must be \"*\" or start with http:// or https://", o))
		}
	}
	return errors.Join(errs...)
}

// AllowedOrigins returns the client origins accepted in the current mode.
func (c *Config) AllowedOrigins() []string {
	if c.Mode == ModeDebug {
		return c.DevOrigins
	}
	return c.ReleaseOrigins
}
