// Package config holds the backoffice runtime configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backoffice/internal/nav"
)

const (
	// StateDirEnv overrides the state directory (also read through the env provider).
	StateDirEnv = "BACKOFFICE_STATE_DIR"
	// DefaultStateBase is the state directory below the user's home.
	DefaultStateBase = ".backoffice"
	// DefaultBadgeInterval is how often badge counts are refreshed.
	DefaultBadgeInterval = 30 * time.Second
)

// Config is the merged configuration.
type Config struct {
	Role     string      `koanf:"role"`
	User     string      `koanf:"user"`
	StateDir string      `koanf:"state_dir"`
	Dev      bool        `koanf:"dev"`
	Log      LogConfig   `koanf:"log"`
	Nav      NavConfig   `koanf:"nav"`
	Badge    BadgeConfig `koanf:"badge"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console or json
	File   string `koanf:"file"`   // "" = <state_dir>/backoffice.log, "-" = stderr
}

// NavConfig holds the navigation debounce windows.
type NavConfig struct {
	CollapseDelay    time.Duration `koanf:"collapse_delay"`
	FlyoutCloseDelay time.Duration `koanf:"flyout_close_delay"`
}

// BadgeConfig configures badge polling.
type BadgeConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// DefaultStateDir returns ~/.backoffice, or "" if the home directory is unknown.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultStateBase)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"role":                   "manager",
		"user":                   "",
		"state_dir":              DefaultStateDir(),
		"dev":                    false,
		"log.level":              "info",
		"log.format":             "console",
		"log.file":               "",
		"nav.collapse_delay":     nav.DefaultCollapseDelay.String(),
		"nav.flyout_close_delay": nav.DefaultFlyoutCloseDelay.String(),
		"badge.interval":         DefaultBadgeInterval.String(),
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if _, err := nav.ParseRole(c.Role); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir is required (set %s or --state-dir)", StateDirEnv)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Nav.CollapseDelay <= 0 {
		return fmt.Errorf("nav.collapse_delay must be positive, got %s", c.Nav.CollapseDelay)
	}
	if c.Nav.FlyoutCloseDelay <= 0 {
		return fmt.Errorf("nav.flyout_close_delay must be positive, got %s", c.Nav.FlyoutCloseDelay)
	}
	if c.Badge.Interval < time.Second {
		return fmt.Errorf("badge.interval must be at least 1s, got %s", c.Badge.Interval)
	}
	return nil
}

// ParsedRole returns the role. Call after Validate.
func (c *Config) ParsedRole() nav.Role {
	r, _ := nav.ParseRole(c.Role)
	return r
}

// Timings converts the nav section.
func (c *Config) Timings() nav.Timings {
	return nav.Timings{
		CollapseDelay:    c.Nav.CollapseDelay,
		FlyoutCloseDelay: c.Nav.FlyoutCloseDelay,
	}
}

// DisplayName is the user shown in the panel footer.
func (c *Config) DisplayName() string {
	if c.User != "" {
		return c.User
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "guest"
}

// LogPath resolves where logs go. "-" means stderr.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.StateDir, "backoffice.log")
}

// PrefsPath is the SQLite preference database.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.StateDir, "prefs.db")
}
