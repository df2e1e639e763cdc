// Package config loads the set of source configurations the agent
// polls: a YAML document listing one entry per upstream monitoring
// server, with credentials and tunables supplied by environment
// variables rather than committed as literals.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceConfig is one upstream monitoring server, immutable once loaded.
type SourceConfig struct {
	ID               int    `yaml:"id"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	PollIntervalSec  int    `yaml:"poll_interval_sec"`
	RetryIntervalSec int    `yaml:"retry_interval_sec"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	LogLevel         string `yaml:"log_level"`
}

// PollInterval returns the configured poll interval as a duration.
func (s SourceConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSec) * time.Second
}

// RetryInterval returns the configured retry interval as a duration.
func (s SourceConfig) RetryInterval() time.Duration {
	return time.Duration(s.RetryIntervalSec) * time.Second
}

// URI builds the JSON-RPC endpoint for this source (spec §6.1).
func (s SourceConfig) URI() string {
	return fmt.Sprintf("http://%s:%d/zabbix/api_jsonrpc.php", s.Host, s.Port)
}

// NormalizedConfig points at the shared downstream database.
type NormalizedConfig struct {
	DSN string `yaml:"dsn"`
}

// RawCacheConfig names the directory holding one buntdb file per source.
type RawCacheConfig struct {
	Dir string `yaml:"dir"`
}

// Document is the top-level shape of the config file.
type Document struct {
	Sources    []SourceConfig   `yaml:"sources"`
	Normalized NormalizedConfig `yaml:"normalized"`
	RawCache   RawCacheConfig   `yaml:"raw_cache"`
}

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads path, preloads envPath into the process environment (if it
// exists; a missing .env is not an error, matching the dev-convenience
// default seen elsewhere in this codebase), substitutes `${VAR}`
// references against the environment, and validates the result.
func Load(path, envPath string) (*Document, error) {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", envPath, err)
			}
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	substituted := expandEnv(string(raw))

	var doc Document
	if err := yaml.Unmarshal([]byte(substituted), &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func expandEnv(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := envRefPattern.FindStringSubmatch(ref)[1]
		return os.Getenv(name)
	})
}

func validate(doc *Document) error {
	if len(doc.Sources) == 0 {
		return fmt.Errorf("config: no sources configured")
	}
	seen := make(map[int]bool, len(doc.Sources))
	for i, s := range doc.Sources {
		if s.Host == "" {
			return fmt.Errorf("config: sources[%d]: host is required", i)
		}
		if s.Port <= 0 {
			return fmt.Errorf("config: sources[%d]: port must be positive", i)
		}
		if s.User == "" || s.Password == "" {
			return fmt.Errorf("config: sources[%d]: user and password are required (set via ${ENV_VAR})", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("config: sources[%d]: duplicate source id %d", i, s.ID)
		}
		seen[s.ID] = true
	}
	if doc.Normalized.DSN == "" {
		return fmt.Errorf("config: normalized.dsn is required")
	}
	if doc.RawCache.Dir == "" {
		return fmt.Errorf("config: raw_cache.dir is required")
	}
	return nil
}
