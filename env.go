package worklog

import (
	"github.com/joho/godotenv"
)

// LoadEnv populates the environment from .env in production and .env.dev otherwise.
// Missing files are not an error; variables already set win.
func LoadEnv(isProd bool) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}
}
