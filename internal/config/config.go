package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridline-labs/gridline/internal/correlate"
	"github.com/gridline-labs/gridline/internal/ladder"
	"github.com/gridline-labs/gridline/internal/rules"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig              `yaml:"log" mapstructure:"log"`
	Anthropic AnthropicConfig        `yaml:"anthropic" mapstructure:"anthropic"`
	Rules     rules.Thresholds       `yaml:"rules" mapstructure:"rules"`
	Scripts   correlate.ScriptConfig `yaml:"scripts" mapstructure:"scripts"`
	Ladders   ladder.Config          `yaml:"ladders" mapstructure:"ladders"`
	Guidance  GuidanceConfig         `yaml:"guidance" mapstructure:"guidance"`
	Store     StoreConfig            `yaml:"store" mapstructure:"store"`
	Server    ServerConfig           `yaml:"server" mapstructure:"server"`
}

// AnthropicConfig holds collaborator API settings.
type AnthropicConfig struct {
	Key               string `yaml:"key" mapstructure:"key"`
	Model             string `yaml:"model" mapstructure:"model"`
	MaxTokens         int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs       int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// GuidanceConfig points at an optional guidance override file.
type GuidanceConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// StoreConfig configures the run cache. An empty path disables caching.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the analyze server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GRIDLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.timeout_secs", 45)
	v.SetDefault("anthropic.requests_per_minute", 0)
	v.SetDefault("guidance.path", "")
	v.SetDefault("store.path", "")
	v.SetDefault("scripts.max_legs", 4)
	v.SetDefault("ladders.rung_cap", 3)

	th := rules.DefaultThresholds()
	v.SetDefault("rules.elite_rank", th.EliteRank)
	v.SetDefault("rules.weak_rank", th.WeakRank)
	v.SetDefault("rules.min_carries", th.MinCarries)
	v.SetDefault("rules.min_targets", th.MinTargets)
	v.SetDefault("rules.min_te_targets", th.MinTETargets)
	v.SetDefault("rules.min_routes", th.MinRoutes)
	v.SetDefault("rules.min_attempts", th.MinAttempts)
	v.SetDefault("rules.min_games", th.MinGames)
	v.SetDefault("rules.min_back_targets", th.MinBackTargets)
	v.SetDefault("rules.min_red_zone_touches", th.MinRedZoneTouches)
	v.SetDefault("rules.target_share_elite", th.TargetShareElite)
	v.SetDefault("rules.snap_share_starter", th.SnapShareStarter)
	v.SetDefault("rules.snap_share_jump", th.SnapShareJump)
	v.SetDefault("rules.high_wind_mph", th.HighWindMPH)
	v.SetDefault("rules.heavy_precip_chance", th.HeavyPrecipChance)
	v.SetDefault("rules.wind_pace_modifier", th.WindPaceModifier)
	v.SetDefault("rules.high_plays_per_game", th.HighPlaysPerGame)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
