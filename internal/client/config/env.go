package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

const (
	envconfigPrefix = "NOTES"
	defaultEnvFile  = ".env"
)

// parseEnv loads the dotenv file, if any, into the process environment and
// then overlays NOTES_* variables onto cfg. Variables already set in the
// environment win over the file. A missing ./.env is not an error; a missing
// file named with -e is.
func parseEnv(cfg *Config, args []string) error {
	envFile := flagx.EnvFileFlag(args)
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process(envconfigPrefix, cfg); err != nil {
		return fmt.Errorf("error getting configuration from environment: %w", err)
	}
	return nil
}
