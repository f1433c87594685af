package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Thresholds holds the bullish/bearish cutoffs for one series, in percent.
// Strictly above bullish classifies Bullish, strictly below bearish
// classifies Bearish, everything else (boundaries included) is Neutral.
type Thresholds struct {
	Bullish float64 `yaml:"bullish"`
	Bearish float64 `yaml:"bearish"`
}

type Config struct {
	Environment string `yaml:"environment" default:"dev" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Fetch struct {
		MaxAttempts int           `yaml:"max_attempts" default:"2" validate:"min=1"`
		Timeout     time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"fetch"`
	Strategy struct {
		Daily            Thresholds `yaml:"daily"`
		Dominance        Thresholds `yaml:"dominance"`
		MinorWave        Thresholds `yaml:"minor_wave"`
		HigherWave       Thresholds `yaml:"higher_wave"`
		MaxGapHours      float64    `yaml:"max_gap_hours" default:"1"`
		WaveMaxGapHours  float64    `yaml:"wave_max_gap_hours" default:"24"`
		EnableHigherWave bool       `yaml:"enable_higher_wave" default:"true"`
	} `yaml:"strategy"`
	CoinGecko struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url" default:"https://api.coingecko.com/api/v3"`
		CoinID  string `yaml:"coin_id" default:"bitcoin"`
		Days    int    `yaml:"days" default:"1"`
	} `yaml:"coingecko"`
	CoinStats struct {
		APIKey          string `yaml:"api_key"`
		BaseURL         string `yaml:"base_url" default:"https://openapiv1.coinstats.app"`
		CoinID          string `yaml:"coin_id" default:"bitcoin"`
		DominancePeriod string `yaml:"dominance_period" default:"24h"`
		ChartPeriod     string `yaml:"chart_period" default:"1m"`
	} `yaml:"coinstats"`
	Binance struct {
		BaseURL  string `yaml:"base_url" default:"https://api.binance.com"`
		Symbol   string `yaml:"symbol" default:"BTCUSDT"`
		Interval string `yaml:"interval" default:"1d"`
		Limit    int    `yaml:"limit" default:"30"`
	} `yaml:"binance"`
	Cache struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		Backend string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		TTL     time.Duration `yaml:"ttl" default:"5m"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"btcwave"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"btcwave.recommendations"`
		Compression  string        `yaml:"compression" default:"gzip"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.applyThresholdDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// Default returns a configuration with every default applied and no file read.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.applyThresholdDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINSTATS_API_KEY"); v != "" {
		c.CoinStats.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	for name, th := range map[string]Thresholds{
		"strategy.daily":       c.Strategy.Daily,
		"strategy.dominance":   c.Strategy.Dominance,
		"strategy.minor_wave":  c.Strategy.MinorWave,
		"strategy.higher_wave": c.Strategy.HigherWave,
	} {
		if th.Bullish <= th.Bearish {
			return fmt.Errorf("%s: bullish threshold %.2f must exceed bearish threshold %.2f", name, th.Bullish, th.Bearish)
		}
	}
	if c.Strategy.MaxGapHours <= 0 || c.Strategy.WaveMaxGapHours <= 0 {
		return fmt.Errorf("strategy gap ceilings must be positive")
	}
	return nil
}

// applyThresholdDefaults fills threshold pairs left at their zero value.
// A zero-width band (bullish == bearish == 0) is never a usable config,
// so zero means "unset" here.
func (c *Config) applyThresholdDefaults() {
	def := func(t *Thresholds, bull, bear float64) {
		if t.Bullish == 0 && t.Bearish == 0 {
			t.Bullish, t.Bearish = bull, bear
		}
	}
	def(&c.Strategy.Daily, 0.5, -0.5)
	def(&c.Strategy.Dominance, 0.5, -0.5)
	def(&c.Strategy.MinorWave, 2.0, -2.0)
	def(&c.Strategy.HigherWave, 5.0, -5.0)
}
