package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// ConfigFileName is the project config file looked up in the working directory.
const ConfigFileName = ".tickets_config"

// KeyProjectName names the ticket directory of the project.
const KeyProjectName = "project_name"

// Config is the ordered key/value content of a project config file. Keys this
// package does not know about are kept and written back in place.
type Config struct {
	keys   []string
	values map[string]string
}

// NewConfig returns an empty config.
func NewConfig() *Config {
	return &Config{values: map[string]string{}}
}

// ParseConfig parses "key:value" lines. Blank lines are ignored; the value is
// everything after the first ':'.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()

	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedConfig, lineNo+1, line)
		}

		cfg.Set(key, value)
	}

	return cfg, nil
}

// Get returns the value for key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]

	return v, ok
}

// Set sets key, keeping its position when it already exists.
func (c *Config) Set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}

	c.values[key] = value
}

// Keys returns the keys in file order.
func (c *Config) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Format serializes the config, one "key:value" line per entry.
func (c *Config) Format() []byte {
	var buf bytes.Buffer

	for _, k := range c.keys {
		buf.WriteString(k + ":" + c.values[k] + "\n")
	}

	return buf.Bytes()
}

// ReadConfigFile reads a project config. A missing file returns an error
// wrapping [fs.ErrNotExist].
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project config %s: %w", path, err)
		}

		return nil, fmt.Errorf("reading project config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// WriteConfigFile atomically replaces the config file at path.
func WriteConfigFile(path string, cfg *Config) error {
	err := atomic.WriteFile(path, bytes.NewReader(cfg.Format()))
	if err != nil {
		return fmt.Errorf("writing project config %s: %w", path, err)
	}

	return nil
}
