package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/assets"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/redaction"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Discord   DiscordConfig   `yaml:"discord"`
	Generator GeneratorConfig `yaml:"generator"`
	Journal   JournalConfig   `yaml:"journal"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tempo     TempoConfig     `yaml:"tempo"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// ServiceConfig holds general service configuration
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DiscordConfig holds Discord configuration.
type DiscordConfig struct {
	Token string `yaml:"token"`
	// GuildID scopes slash command registration. Empty registers globally.
	GuildID string `yaml:"guild_id"`
	// DisableExpressions drops the emoji intent, which turns off emoji and sticker handling.
	DisableExpressions bool `yaml:"disable_expressions"`
	ReadRetries        int  `yaml:"read_retries"`
	ReadyTimeoutSec    int  `yaml:"ready_timeout_seconds"`
}

// GeneratorConfig controls the /generate command and CLI runs.
type GeneratorConfig struct {
	LayoutPath string `yaml:"layout_path"`
	Reason     string `yaml:"reason"`
	TimeoutSec int    `yaml:"timeout_seconds"`
}

// JournalConfig holds the SQLite run journal location. An empty path disables it.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig holds the Prometheus endpoint settings. An empty address disables it.
type MetricsConfig struct {
	Address   string `yaml:"address"`
	Namespace string `yaml:"namespace"`
}

// LoggingConfig mirrors logging.Options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type TempoConfig struct {
	Exporter   string  `yaml:"exporter"`
	Endpoint   string  `yaml:"url"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sample_rate"`
}

// AssetsConfig controls how image references are fetched and cached.
type AssetsConfig struct {
	CacheTTLMinutes int   `yaml:"cache_ttl_minutes"`
	CacheMaxMB      int   `yaml:"cache_max_mb"`
	MaxBytes        int64 `yaml:"max_bytes"`
	// ObjectStore enables s3:// references when set.
	ObjectStore *assets.ObjectStoreConfig `yaml:"object_store"`
}

// ReadyTimeout is how long callers wait for the gateway Ready event.
func (c *Config) ReadyTimeout() time.Duration {
	return time.Duration(c.Discord.ReadyTimeoutSec) * time.Second
}

// GenerateTimeout bounds one generation. Zero means no limit.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSec) * time.Second
}

// CacheTTL is the lifetime of a cached asset.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Assets.CacheTTLMinutes) * time.Minute
}

// LogValue keeps secrets out of log output.
func (c *Config) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("service", c.Service.Name),
		slog.String("discord_token", redaction.RedactSecret(c.Discord.Token)),
		slog.String("discord_guild_id", c.Discord.GuildID),
		slog.Bool("expressions", !c.Discord.DisableExpressions),
		slog.String("layout_path", c.Generator.LayoutPath),
		slog.String("journal_path", c.Journal.Path),
		slog.String("metrics_address", c.Metrics.Address),
		slog.String("tempo_exporter", c.Tempo.Exporter),
		slog.String("tempo_url", redaction.RedactURL(c.Tempo.Endpoint)),
	}
	if c.Assets.ObjectStore != nil {
		attrs = append(attrs,
			slog.String("object_store_endpoint", redaction.RedactURL(c.Assets.ObjectStore.Endpoint)),
			slog.String("object_store_access_key", redaction.RedactAccessKey(c.Assets.ObjectStore.AccessKey)),
			slog.String("object_store_secret", redaction.RedactSecret(c.Assets.ObjectStore.SecretKey)))
	}
	return slog.GroupValue(attrs...)
}

// LoadConfig loads the configuration from a YAML file.
// A .env file in the working directory is applied to the environment first.
// A missing config file is not an error; the environment then supplies everything.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// After unmarshaling, load from environment if values are missing
	if err := loadConfigFromEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// loadConfigFromEnv fills values that are not already set from environment variables.
func loadConfigFromEnv(cfg *Config) error {
	setString(&cfg.Service.Name, "SERVICE_NAME")
	setString(&cfg.Service.Version, "SERVICE_VERSION")

	setString(&cfg.Discord.Token, "DISCORD_TOKEN")
	setString(&cfg.Discord.GuildID, "DISCORD_GUILD_ID")
	if !cfg.Discord.DisableExpressions {
		v, err := envBool("DISCORD_DISABLE_EXPRESSIONS")
		if err != nil {
			return err
		}
		cfg.Discord.DisableExpressions = v
	}
	if err := setInt(&cfg.Discord.ReadRetries, "DISCORD_READ_RETRIES"); err != nil {
		return err
	}
	if err := setInt(&cfg.Discord.ReadyTimeoutSec, "DISCORD_READY_TIMEOUT_SECONDS"); err != nil {
		return err
	}

	setString(&cfg.Generator.LayoutPath, "GENERATOR_LAYOUT_PATH")
	setString(&cfg.Generator.Reason, "GENERATOR_REASON")
	if err := setInt(&cfg.Generator.TimeoutSec, "GENERATOR_TIMEOUT_SECONDS"); err != nil {
		return err
	}

	setString(&cfg.Journal.Path, "JOURNAL_PATH")
	setString(&cfg.Metrics.Address, "METRICS_ADDRESS")
	setString(&cfg.Metrics.Namespace, "METRICS_NAMESPACE")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Logging.File, "LOG_FILE")

	setString(&cfg.Tempo.Exporter, "TEMPO_EXPORTER")
	setString(&cfg.Tempo.Endpoint, "TEMPO_URL")
	if cfg.Tempo.SampleRate == 0 {
		if v := os.Getenv("TEMPO_SAMPLE_RATE"); v != "" {
			rate, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("TEMPO_SAMPLE_RATE: %w", err)
			}
			cfg.Tempo.SampleRate = rate
		}
	}

	if cfg.Assets.ObjectStore == nil {
		if endpoint := os.Getenv("OBJECT_STORE_ENDPOINT"); endpoint != "" {
			cfg.Assets.ObjectStore = &assets.ObjectStoreConfig{
				Endpoint:  endpoint,
				AccessKey: os.Getenv("OBJECT_STORE_ACCESS_KEY"),
				SecretKey: os.Getenv("OBJECT_STORE_SECRET_KEY"),
				Region:    os.Getenv("OBJECT_STORE_REGION"),
				UseSSL:    strings.EqualFold(os.Getenv("OBJECT_STORE_USE_SSL"), "true"),
			}
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "discord-guild-generator"
	}
	if cfg.Discord.ReadRetries == 0 {
		cfg.Discord.ReadRetries = 3
	}
	if cfg.Discord.ReadyTimeoutSec == 0 {
		cfg.Discord.ReadyTimeoutSec = 30
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "guildgen"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Tempo.Exporter == "" {
		cfg.Tempo.Exporter = "none"
	}
	if cfg.Tempo.SampleRate == 0 {
		cfg.Tempo.SampleRate = 1
	}
	if cfg.Assets.CacheTTLMinutes == 0 {
		cfg.Assets.CacheTTLMinutes = 10
	}
}

// ValidateForBot checks what the long-running bot needs.
func (c *Config) ValidateForBot() error {
	var missing []string
	if c.Discord.Token == "" {
		missing = append(missing, "discord.token (DISCORD_TOKEN)")
	}
	if c.Generator.LayoutPath == "" {
		missing = append(missing, "generator.layout_path (GENERATOR_LAYOUT_PATH)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func setInt(dst *int, key string) error {
	if *dst != 0 {
		return nil
	}
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
