// Package config loads runtime configuration for the MemoMap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: MEMOMAP_* variables, optionally from a .env file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the MemoMap API
//	-t int          request timeout (seconds)
//	-d string       path of the session database
//	-l string       log level: debug, info, warn, error
//	-offline-demo   use in-process repositories instead of the API
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "server_base_url": "https://memomap.example",
//	  "request_timeout": "30s",
//	  "requests_per_second": 5,
//	  "session_db_path": "/home/me/.config/memomap/memomap.db",
//	  "log_level": "info",
//	  "log_backend": "zap",
//	  "media": {"bucket": "memomap", "region": "us-east-1", "endpoint": "http://127.0.0.1:9000"}
//	}
//
// Only keys present in the file override earlier values.
package config
