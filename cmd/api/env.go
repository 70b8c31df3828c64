package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from ENV_FILE, or .env when
// ENV_FILE is unset. A missing default file is ignored; a missing ENV_FILE
// is an error. Existing process environment variables are not overridden.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("ENV_FILE")
	if !explicit || path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
