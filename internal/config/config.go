package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings of the board host.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Board       BoardConfig
	Monitor     MonitorConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AllowRemote  bool
}

type BoardConfig struct {
	DBPath           string
	Bucket           string
	StorageKey       string
	SimulatedLatency time.Duration
	RolloverSchedule string
	FeedSize         int
}

type MonitorConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suitable for a single local user.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskboard"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "127.0.0.1"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			AllowRemote:  getBool("SERVER_ALLOW_REMOTE", false),
		},
		Board: BoardConfig{
			DBPath:           getString("BOARD_DB_PATH", "./data/taskboard.db"),
			Bucket:           getString("BOARD_BUCKET", "taskboard"),
			StorageKey:       getString("BOARD_STORAGE_KEY", "taskboard.tasks"),
			SimulatedLatency: getDuration("BOARD_SIMULATED_LATENCY", 0),
			RolloverSchedule: getString("BOARD_ROLLOVER_SCHEDULE", "0 0 0 * * *"),
			FeedSize:         getInt("BOARD_FEED_SIZE", 256),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 10*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Board.DBPath == "" {
		return fmt.Errorf("BOARD_DB_PATH must not be empty")
	}
	if c.Board.StorageKey == "" {
		return fmt.Errorf("BOARD_STORAGE_KEY must not be empty")
	}
	if c.Board.SimulatedLatency < 0 {
		return fmt.Errorf("BOARD_SIMULATED_LATENCY must not be negative")
	}
	if c.Board.FeedSize <= 0 {
		return fmt.Errorf("BOARD_FEED_SIZE must be positive")
	}
	return nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
