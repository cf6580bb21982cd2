package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from the first of .env/.env.local
// that parses. Existing process environment variables are never overwritten
// (godotenv.Load semantics). Absence of an env file is not an error.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", slog.String("file", envPath))
			return
		}
	}
}
