package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	ProviderDynamoDB = "dynamodb"
	ProviderSqlite   = "sqlite"
	ProviderFile     = "file"
)

// Config holds process-wide settings, resolved once at startup.
type Config struct {
	Provider           string `toml:"provider"`
	Region             string `toml:"region"`
	AccessKeyID        string `toml:"access_key_id"`
	SecretAccessKey    string `toml:"secret_access_key"`
	SsmParameterPrefix string `toml:"ssm_parameter_prefix"`
	DynamoDBEndpoint   string `toml:"dynamodb_endpoint"`
	SqlitePath         string `toml:"sqlite_path"`
	FilePath           string `toml:"file_path"`
	Addr               string `toml:"addr"`
	StrictStats        bool   `toml:"strict_stats"`
	LogLevel           string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Provider:   ProviderDynamoDB,
		SqlitePath: "findings.db",
		FilePath:   "findings.yaml",
		Addr:       ":8000",
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, the optional TOML file at path,
// a .env file in the working directory and the environment, in that order.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode config file '%s': %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Failed to load .env file: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"AWS_REGION":                     &c.Region,
		"AWS_ACCESS_KEY_ID":              &c.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY":          &c.SecretAccessKey,
		"SSM_PARAMETER_PREFIX":           &c.SsmParameterPrefix,
		"CLOUDAUDITOR_PROVIDER":          &c.Provider,
		"CLOUDAUDITOR_DYNAMODB_ENDPOINT": &c.DynamoDBEndpoint,
		"CLOUDAUDITOR_SQLITE_PATH":       &c.SqlitePath,
		"CLOUDAUDITOR_FILE_PATH":         &c.FilePath,
		"CLOUDAUDITOR_ADDR":              &c.Addr,
		"CLOUDAUDITOR_LOG_LEVEL":         &c.LogLevel,
	}
	for name, field := range overrides {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*field = value
		}
	}

	if value, ok := os.LookupEnv("CLOUDAUDITOR_STRICT_STATS"); ok && value != "" {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid CLOUDAUDITOR_STRICT_STATS value '%s': %w", value, err)
		}
		c.StrictStats = strict
	}

	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderDynamoDB, ProviderSqlite, ProviderFile:
	default:
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// HasStaticCredentials reports whether both halves of an access key are set.
func (c Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
