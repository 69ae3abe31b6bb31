package configs

import (
	"fmt"
	"os"
	"time"
)

// Listing limits and retention tunables.
const (
	DefaultRecentQueries = 20
	MaxRecentQueries     = 100

	// MaxQueriesPerFarmer caps per-owner history; older queries are pruned
	// after each new creation.
	MaxQueriesPerFarmer = 100

	DefaultFeedLimit    = 20
	MaxFeedLimit        = 50
	DefaultCommentLimit = 50
	MaxCommentLimit     = 200

	AdvisorTimeout = 30 * time.Second
)

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	JWTSecret        string
	AdminSignupCode  string
	AdvisorBaseURL   string
	AdvisorAPIKey    string
	AdvisorModel     string
	AdvisorTimeout   time.Duration
}

// Load reads the environment. MONGO_URI, DB_NAME and JWT_SECRET are
// mandatory; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "5000"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminSignupCode: os.Getenv("ADMIN_SIGNUP_CODE"),
		AdvisorBaseURL:  os.Getenv("ADVISOR_BASE_URL"),
		AdvisorAPIKey:   os.Getenv("ADVISOR_API_KEY"),
		AdvisorModel:    os.Getenv("ADVISOR_MODEL"),
		AdvisorTimeout:  AdvisorTimeout,
	}
	if cfg.MongoURI == "" || cfg.DBName == "" {
		return Config{}, fmt.Errorf("MONGO_URI and DB_NAME must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
