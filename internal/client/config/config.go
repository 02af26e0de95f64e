package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/memomap/internal/client/media"
	"github.com/dmitrijs2005/memomap/internal/filex"
)

// Config holds runtime settings for the MemoMap CLI.
//
// RequestsPerSecond of zero disables client-side pacing. An empty
// Media.Bucket disables image uploads; image arguments are then sent to the
// API as given.
type Config struct {
	ServerBaseURL     string        `env:"MEMOMAP_SERVER_URL"`
	RequestTimeout    time.Duration `env:"MEMOMAP_REQUEST_TIMEOUT,strict"`
	RequestsPerSecond float64       `env:"MEMOMAP_REQUESTS_PER_SECOND,strict"`
	SessionDBPath     string        `env:"MEMOMAP_SESSION_DB"`
	LogLevel          string        `env:"MEMOMAP_LOG_LEVEL"`
	LogBackend        string        `env:"MEMOMAP_LOG_BACKEND"`
	OfflineDemo       bool          `env:"MEMOMAP_OFFLINE_DEMO,strict"`
	Media             Media
}

type Media struct {
	Bucket        string `env:"MEMOMAP_MEDIA_BUCKET"`
	Region        string `env:"MEMOMAP_MEDIA_REGION"`
	Endpoint      string `env:"MEMOMAP_MEDIA_ENDPOINT"`
	AccessKey     string `env:"MEMOMAP_MEDIA_ACCESS_KEY"`
	SecretKey     string `env:"MEMOMAP_MEDIA_SECRET_KEY"`
	PublicBaseURL string `env:"MEMOMAP_MEDIA_PUBLIC_BASE_URL"`
}

func (m Media) UploaderConfig() media.Config {
	return media.Config{
		Bucket:        m.Bucket,
		Region:        m.Region,
		Endpoint:      m.Endpoint,
		AccessKey:     m.AccessKey,
		SecretKey:     m.SecretKey,
		PublicBaseURL: m.PublicBaseURL,
	}
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 30 * time.Second
	c.RequestsPerSecond = 0
	c.SessionDBPath = defaultSessionDBPath()
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.OfflineDemo = false
	c.Media = Media{Region: "us-east-1"}
}

func defaultSessionDBPath() string {
	return filex.DefaultStatePath("memomap.db")
}

// Load builds a Config from defaults, the environment, the JSON file named
// by -c/-config in args and the flags in args. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
