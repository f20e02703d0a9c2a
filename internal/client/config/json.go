package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// Duration accepts "10s"-style strings or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// JsonConfig is the on-disk shape. Pointer fields tell "absent" from "zero".
type JsonConfig struct {
	APIBaseURL     *string   `json:"api_url"`
	RequestTimeout *Duration `json:"request_timeout"`
	DataDir        *string   `json:"data_dir"`
	CredentialTTL  *Duration `json:"credential_ttl"`
	LogLevel       *string   `json:"log_level"`
	Ephemeral      *bool     `json:"ephemeral"`
	Backup         *Backup   `json:"backup"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.CredentialTTL != nil {
		cfg.CredentialTTL = time.Duration(*jc.CredentialTTL)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	if jc.Backup != nil {
		mergeBackup(&cfg.Backup, *jc.Backup)
	}
	return nil
}

func mergeBackup(dst *Backup, src Backup) {
	if src.Bucket != "" {
		dst.Bucket = src.Bucket
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.AccessKey != "" {
		dst.AccessKey = src.AccessKey
	}
	if src.SecretKey != "" {
		dst.SecretKey = src.SecretKey
	}
	if src.Prefix != "" {
		dst.Prefix = src.Prefix
	}
}
