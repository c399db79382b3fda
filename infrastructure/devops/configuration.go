package devops

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
	"swissclock.ch/swissclock/directory"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
)

type Config struct {
	Addr     string `yaml:"addr"`
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"logLevel"`
	// SigningSecret is base64 encoded.
	SigningSecret string        `yaml:"signingSecret"`
	TokenTTL      time.Duration `yaml:"tokenTTL"`
	// SSMParameter names a SecureString holding YAML that overlays this file.
	SSMParameter string           `yaml:"ssmParameter"`
	Storage      StorageConfig    `yaml:"storage"`
	Users        []directory.User `yaml:"users"`
	Reports      ReportConfig     `yaml:"reports"`
}

type StorageConfig struct {
	Driver         string `yaml:"driver"`
	Path           string `yaml:"path"`
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"maxConnections"`
}

type ReportConfig struct {
	Bucket string   `yaml:"bucket"`
	Prefix string   `yaml:"prefix"`
	From   string   `yaml:"from"`
	To     []string `yaml:"to"`
}

func Default() *Config {
	return &Config{
		Addr:     ":8090",
		Timezone: "Europe/Zurich",
		LogLevel: "warn",
		TokenTTL: 12 * time.Hour,
		Storage: StorageConfig{
			Driver:         StorageMemory,
			Path:           "swissclock.db",
			MaxConnections: 10,
		},
		Reports: ReportConfig{Prefix: "reports/"},
	}
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies environment overrides and, if configured, the SSM overlay.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Printf("[WARN] config file %s not found, using defaults\n", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.SSMParameter != "" {
		overlay, err := LoadParameter(ctx, cfg.SSMParameter)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal([]byte(overlay), cfg); err != nil {
			return nil, fmt.Errorf("unmarshal parameter %s: %w", cfg.SSMParameter, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Addr, "SWISSCLOCK_ADDR")
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	setString(&c.Timezone, "SWISSCLOCK_TIMEZONE")
	setString(&c.LogLevel, "SWISSCLOCK_LOG_LEVEL")
	setString(&c.SigningSecret, "SWISSCLOCK_SIGNING_SECRET")
	setString(&c.SSMParameter, "SWISSCLOCK_SSM_PARAMETER")
	setString(&c.Storage.Driver, "SWISSCLOCK_STORAGE")
	setString(&c.Storage.Path, "SWISSCLOCK_SQLITE_PATH")
	setString(&c.Storage.DSN, "DSN")
	setString(&c.Reports.Bucket, "SWISSCLOCK_REPORT_BUCKET")
	setString(&c.Reports.From, "SWISSCLOCK_REPORT_FROM")
	if to := os.Getenv("SWISSCLOCK_REPORT_TO"); to != "" {
		c.Reports.To = strings.Split(to, ",")
	}
	if n, err := strconv.Atoi(os.Getenv("SWISSCLOCK_MAX_CONNECTIONS")); err == nil && n > 0 {
		c.Storage.MaxConnections = n
	}
	if ttl, err := time.ParseDuration(os.Getenv("SWISSCLOCK_TOKEN_TTL")); err == nil && ttl > 0 {
		c.TokenTTL = ttl
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for sqlite")
		}
	case StorageMySQL:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn (or DSN) is required for mysql")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("tokenTTL must be positive")
	}
	return nil
}

func (c *Config) Secret() ([]byte, error) {
	if c.SigningSecret == "" {
		return nil, errors.New("signing secret is not configured")
	}
	secret, err := base64.StdEncoding.DecodeString(c.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing secret: %w", err)
	}
	return secret, nil
}

func LoadParameter(ctx context.Context, name string) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s is empty", name)
	}
	return *out.Parameter.Value, nil
}
