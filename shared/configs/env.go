package configs

import (
	"os"

	"github.com/joho/godotenv"
)

type Envs struct {
	Port           string
	GinMode        string
	AllowedOrigins string
}

// Load reads the process environment, honoring a local .env file if present.
func Load() Envs {
	godotenv.Load()

	return Envs{
		Port:           getenv("PORT", "5000"),
		GinMode:        getenv("GIN_MODE", "debug"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

func getenv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
