package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/memomap/internal/flagx"
	"github.com/dmitrijs2005/memomap/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	ServerBaseURL     *string         `json:"server_base_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
	SessionDBPath     *string         `json:"session_db_path"`
	LogLevel          *string         `json:"log_level"`
	LogBackend        *string         `json:"log_backend"`
	OfflineDemo       *bool           `json:"offline_demo"`
	Media             *JsonMedia      `json:"media"`
}

type JsonMedia struct {
	Bucket        *string `json:"bucket"`
	Region        *string `json:"region"`
	Endpoint      *string `json:"endpoint"`
	AccessKey     *string `json:"access_key"`
	SecretKey     *string `json:"secret_key"`
	PublicBaseURL *string `json:"public_base_url"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.ServerBaseURL, jc.ServerBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	overlay(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	overlay(&cfg.SessionDBPath, jc.SessionDBPath)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	overlay(&cfg.OfflineDemo, jc.OfflineDemo)

	if m := jc.Media; m != nil {
		overlay(&cfg.Media.Bucket, m.Bucket)
		overlay(&cfg.Media.Region, m.Region)
		overlay(&cfg.Media.Endpoint, m.Endpoint)
		overlay(&cfg.Media.AccessKey, m.AccessKey)
		overlay(&cfg.Media.SecretKey, m.SecretKey)
		overlay(&cfg.Media.PublicBaseURL, m.PublicBaseURL)
	}
	return nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
