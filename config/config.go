package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL"  default:"http://localhost:8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT"  default:"15s"`
	SessionDir  string        `envconfig:"SESSION_DIR"   default:""`
	LogLevel    string        `envconfig:"LOG_LEVEL"     default:"info"`

	// Mock server settings, unused by the client binary.
	MockPort      string `envconfig:"MOCK_SERVER_PORT" default:":8080"`
	MockJWTSecret string `envconfig:"MOCK_JWT_SECRET"  default:"dev-secret-change-me"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		if config.SessionDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				logger.Warnf("Could not resolve home directory, storing session next to the binary: %v", err)
				config.SessionDir = ".marketplace"
			} else {
				config.SessionDir = filepath.Join(home, ".marketplace")
			}
		}

		logger.Infof("Configuration loaded: APIBaseURL=%s, LogLevel=%s", config.APIBaseURL, config.LogLevel)
	})
	return &config
}
