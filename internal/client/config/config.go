package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	DefaultAPIBaseURL     = "http://127.0.0.1:8080/api"
	DefaultRequestTimeout = 10 * time.Second
	DefaultCredentialTTL  = 7 * 24 * time.Hour
	DefaultLogLevel       = "info"
	DefaultBackupPrefix   = "notes"
	DefaultBackupRegion   = "us-east-1"

	dataDirName = ".gophnotes"
)

// Backup configures the S3-compatible bucket notes are exported to.
// An empty Bucket disables the export.
type Backup struct {
	Bucket    string `json:"bucket" envconfig:"BUCKET"`
	Region    string `json:"region" envconfig:"REGION"`
	Endpoint  string `json:"endpoint" envconfig:"ENDPOINT"`
	AccessKey string `json:"access_key" envconfig:"ACCESS_KEY"`
	SecretKey string `json:"secret_key" envconfig:"SECRET_KEY"`
	Prefix    string `json:"prefix" envconfig:"PREFIX"`
}

// Config holds runtime settings for the notes CLI.
type Config struct {
	APIBaseURL     string        `envconfig:"API_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	DataDir        string        `envconfig:"DATA_DIR"`
	CredentialTTL  time.Duration `envconfig:"CREDENTIAL_TTL"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	// Ephemeral keeps the credential in memory; nothing is written to DataDir.
	Ephemeral bool   `envconfig:"EPHEMERAL"`
	Backup    Backup `envconfig:"BACKUP"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = DefaultRequestTimeout
	c.DataDir = defaultDataDir()
	c.CredentialTTL = DefaultCredentialTTL
	c.LogLevel = DefaultLogLevel
	c.Ephemeral = false
	c.Backup = Backup{Region: DefaultBackupRegion, Prefix: DefaultBackupPrefix}
}

// LoadConfig builds a Config from defaults, the environment, an optional JSON
// file and the flags in args, later sources overriding earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	dir, err := homedir.Expand(c.DataDir)
	if err != nil {
		return fmt.Errorf("invalid data dir %q: %w", c.DataDir, err)
	}
	c.DataDir = filepath.Clean(dir)

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.CredentialTTL <= 0 {
		c.CredentialTTL = DefaultCredentialTTL
	}
	return nil
}

func defaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}
