package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/mvwi/icheckout/internal/autostash"
)

// RepoFile is the repo-local config file name, read from the repository root.
const RepoFile = ".icheckout.toml"

// Config holds all icheckout configuration. Every field has a sensible default.
// Resolved via: defaults → global (~/.config/icheckout/config.toml) → global per-repo → .icheckout.toml → env
type Config struct {
	// Match selects how stash lines are tied to the destination branch:
	// "substring" (default) or "exact".
	Match string `toml:"match"`

	// Strict stops the run when stash, checkout, apply or drop exits non-zero.
	// Pointer so a repo file can turn off a global "strict = true".
	Strict *bool `toml:"strict"`

	// Color is "auto" (default), "always" or "never".
	Color string `toml:"color"`

	// Debug writes a log of every git invocation to LogFile.
	Debug *bool `toml:"debug"`

	// LogFile defaults to <git-dir>/icheckout.log.
	LogFile string `toml:"log_file"`

	// LogMaxSizeMB and LogMaxBackups control log rotation.
	LogMaxSizeMB  int `toml:"log_max_size_mb"`
	LogMaxBackups int `toml:"log_max_backups"`
}

// globalFile is the on-disk shape of ~/.config/icheckout/config.toml.
// Top-level fields are defaults; [repos.<name>] sections override per repo.
type globalFile struct {
	Config
	Repos map[string]Config `toml:"repos"`
}

// Load reads config with layered precedence:
//  1. Hardcoded defaults
//  2. Global defaults (~/.config/icheckout/config.toml top-level fields)
//  3. Global per-repo ([repos.<repoName>] section)
//  4. Repo-local (.icheckout.toml in dir)
//  5. ICHECKOUT_STRICT, ICHECKOUT_DEBUG, ICHECKOUT_LOG_FILE
//
// Each layer only overrides fields it explicitly sets.
func Load(dir, repoName string) (*Config, error) {
	cfg := &Config{
		Match:         "substring",
		Color:         "auto",
		LogMaxSizeMB:  1,
		LogMaxBackups: 2,
	}

	if globalPath, err := globalConfigPath(); err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			var gf globalFile
			if err := toml.Unmarshal(data, &gf); err != nil {
				return nil, fmt.Errorf("global config (%s): %w", globalPath, err)
			}
			mergeConfig(cfg, &gf.Config)
			if repoName != "" {
				if repoCfg, ok := gf.Repos[repoName]; ok {
					mergeConfig(cfg, &repoCfg)
				}
			}
		}
	}

	if dir != "" {
		repoPath := filepath.Join(dir, RepoFile)
		if data, err := os.ReadFile(repoPath); err == nil {
			var repoCfg Config
			if err := toml.Unmarshal(data, &repoCfg); err != nil {
				return nil, fmt.Errorf("repo config (%s): %w", repoPath, err)
			}
			mergeConfig(cfg, &repoCfg)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig copies non-zero fields from src into dst.
func mergeConfig(dst, src *Config) {
	if src.Match != "" {
		dst.Match = src.Match
	}
	if src.Strict != nil {
		dst.Strict = src.Strict
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.Debug != nil {
		dst.Debug = src.Debug
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.LogMaxSizeMB > 0 {
		dst.LogMaxSizeMB = src.LogMaxSizeMB
	}
	if src.LogMaxBackups > 0 {
		dst.LogMaxBackups = src.LogMaxBackups
	}
}

func applyEnv(cfg *Config) error {
	for _, env := range []struct {
		name string
		dst  **bool
	}{
		{"ICHECKOUT_STRICT", &cfg.Strict},
		{"ICHECKOUT_DEBUG", &cfg.Debug},
	} {
		v, ok := os.LookupEnv(env.name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", env.name, v)
		}
		*env.dst = &b
	}
	if v := os.Getenv("ICHECKOUT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

func (c *Config) validate() error {
	if _, err := autostash.ParseMatchMode(c.Match); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: unknown color mode %q (want \"auto\", \"always\" or \"never\")", c.Color)
	}
	return nil
}

// globalConfigPath returns ~/.config/icheckout/config.toml.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "icheckout", "config.toml"), nil
}

// MatchMode returns the parsed match mode. Load has already validated it.
func (c *Config) MatchMode() autostash.MatchMode {
	mode, _ := autostash.ParseMatchMode(c.Match)
	return mode
}

// IsStrict reports whether backend failures stop the run.
func (c *Config) IsStrict() bool {
	return c.Strict != nil && *c.Strict
}

// IsDebug reports whether the debug log is enabled.
func (c *Config) IsDebug() bool {
	return c.Debug != nil && *c.Debug
}

// EffectiveLogFile returns LogFile, falling back to icheckout.log in gitDir.
// Returns "" when neither is known.
func (c *Config) EffectiveLogFile(gitDir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if gitDir == "" {
		return ""
	}
	return filepath.Join(gitDir, "icheckout.log")
}
