package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/tickets/internal/project"
)

// ErrDuplicateConfigFiles is returned when both .json and .jsonc config files exist.
var ErrDuplicateConfigFiles = errors.New("duplicate config files")

// Config holds the user configuration.
type Config struct {
	// TicketsRoot overrides ~/.tickets. "~/" is expanded; relative paths are
	// taken relative to the home directory.
	TicketsRoot string `json:"tickets_root,omitempty"`
	// Editor is the command used by "tickets edit". Falls back to $VISUAL,
	// $EDITOR, then vi.
	Editor string `json:"editor,omitempty"`

	// Resolved (not serialized)
	EffectiveCwd string `json:"-"`
	LoadedFrom   string `json:"-"`
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // --config flag value
	Env             map[string]string // Environment variables (for XDG_CONFIG_HOME and HOME)
}

// LoadConfig loads the user configuration:
//  1. Built-in defaults (everything empty)
//  2. $XDG_CONFIG_HOME/tickets/config.json or config.jsonc
//     (defaults to ~/.config/tickets/), skipped when missing
//  3. With --config, that file is used instead of 2 and must exist.
//
// Both .json and .jsonc files support comments via tailscale/hujson.
// If both .json and .jsonc exist at the same location, it's an error.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" || !filepath.IsAbs(workDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", project.ErrCurrentDirectoryUnavailable, err)
		}

		workDir = filepath.Join(cwd, workDir)
	}

	var cfg Config

	if input.ConfigPath != "" {
		configPath := input.ConfigPath
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(workDir, configPath)
		}

		explicitCfg, err := loadConfigFile(configPath)
		if err != nil {
			return Config{}, err
		}

		cfg = mergeConfigs(&cfg, &explicitCfg)
		cfg.LoadedFrom = configPath
	} else {
		basePath, err := getUserConfigBasePath(input.Env)
		if err != nil {
			return Config{}, err
		}

		configPath, findErr := findConfigFile(basePath)

		switch {
		case findErr == nil:
			userCfg, loadErr := loadConfigFile(configPath)
			if loadErr != nil {
				// File exists but is invalid - this is an error
				return Config{}, loadErr
			}

			cfg = mergeConfigs(&cfg, &userCfg)
			cfg.LoadedFrom = configPath
		case !errors.Is(findErr, os.ErrNotExist):
			return Config{}, findErr
		}
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// findConfigFile checks basePath with both .json and .jsonc extensions and
// returns an error if both exist, os.ErrNotExist if neither does.
func findConfigFile(basePath string) (string, error) {
	jsonPath := basePath + ".json"
	jsoncPath := basePath + ".jsonc"

	jsonExists, jsonErr := fileExists(jsonPath)
	if jsonErr != nil {
		return "", jsonErr
	}

	jsoncExists, jsoncErr := fileExists(jsoncPath)
	if jsoncErr != nil {
		return "", jsoncErr
	}

	switch {
	case jsonExists && jsoncExists:
		return "", fmt.Errorf("%w: both %s and %s exist; remove one", ErrDuplicateConfigFiles, jsonPath, jsoncPath)
	case jsonExists:
		return jsonPath, nil
	case jsoncExists:
		return jsoncPath, nil
	}

	return "", os.ErrNotExist
}

// fileExists checks if a file exists and is not a directory.
// Returns (true, nil) if file exists, (false, nil) if not found,
// or (false, error) for other errors (e.g., permission denied).
func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("checking file %s: %w", path, err)
	}

	return !info.IsDir(), nil
}

// loadConfigFile loads and parses a JSON/JSONC config file.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// mergeConfigs merges override into base, with override taking precedence.
// Empty values in override do not override base values.
func mergeConfigs(base, override *Config) Config {
	result := *base

	if override.TicketsRoot != "" {
		result.TicketsRoot = override.TicketsRoot
	}

	if override.Editor != "" {
		result.Editor = override.Editor
	}

	return result
}

// getUserConfigBasePath returns the user config base path (without extension).
// Uses env map for XDG_CONFIG_HOME instead of os.Getenv().
func getUserConfigBasePath(env map[string]string) (string, error) {
	if xdg, ok := env["XDG_CONFIG_HOME"]; ok && xdg != "" {
		return filepath.Join(xdg, "tickets", "config"), nil
	}

	home, err := project.HomeDir(env)
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "tickets", "config"), nil
}
