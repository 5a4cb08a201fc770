package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name          string `koanf:"name"`
		HTTPAddr      string `koanf:"http_addr"`
		LogLevel      string `koanf:"log_level"`
		LogFile       string `koanf:"log_file"`
		SessionSecret string `koanf:"session_secret"`
	} `koanf:"app"`

	Store struct {
		// Driver is "sqlite" (in-memory, the default) or "postgres".
		Driver string `koanf:"driver"`
		DSN    string `koanf:"dsn"`
	} `koanf:"store"`

	// Latency is the simulated network delay applied by the catalog and
	// order services in front of the in-memory store.
	Latency struct {
		Read  time.Duration `koanf:"read"`
		Write time.Duration `koanf:"write"`
	} `koanf:"latency"`

	SMS   SMSConfig   `koanf:"sms"`
	Email EmailConfig `koanf:"email"`
}

type SMSConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Username string `koanf:"username"`
	APIKey   string `koanf:"api_key"`
	URL      string `koanf:"url"`
	SenderID string `koanf:"sender_id"`
}

type EmailConfig struct {
	Enabled         bool   `koanf:"enabled"`
	AWSRegion       string `koanf:"aws_region"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Sender          string `koanf:"sender"`
}

// Load reads <pathDir>/base.yaml, overlays <pathDir>/<envName>.yaml when it
// exists, then lets CANTEEN_-prefixed environment variables override both
// (nested keys split on "__", e.g. CANTEEN_STORE__DSN).
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base config: %w", err)
	}

	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	_ = k.Load(env.Provider("CANTEEN_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "CANTEEN_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Default returns a runnable configuration without any config files,
// backed by the in-memory store.
func Default() Config {
	var cfg Config
	cfg.App.Name = "order-up-scholars"
	cfg.App.HTTPAddr = ":8080"
	cfg.App.LogLevel = "info"
	cfg.App.LogFile = "./logs/app.log"
	cfg.App.SessionSecret = "change-me"
	cfg.Store.Driver = "sqlite"
	cfg.Store.DSN = "file::memory:?cache=shared"
	return cfg
}
