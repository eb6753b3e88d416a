package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures process-level configuration. The store connection is
// initialized once at startup from these values and shared by all requests.
type Config struct {
	Addr               string
	MongoURI           string
	MongoDBName        string
	LogLevel           string
	CORSAllowedOrigins string
	ShutdownTimeout    time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; every
// key has a default suitable for local development.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getenv("ADDR", ":8000"),
		MongoURI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getenv("MONGO_DB_NAME", "policy_manager_db"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "*"),
		ShutdownTimeout:    10 * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
