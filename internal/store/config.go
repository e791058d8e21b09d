package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const envConfigDir = "SECRETARY_CONFIG_DIR"

type GlobalConfig struct {
	// APIURL is the REST backend base, including the /api prefix.
	APIURL string `yaml:"apiUrl,omitempty"`

	// WebURL is where the browser pages (meeting-room.html) are served.
	// When empty it is derived from APIURL by dropping a trailing /api.
	WebURL string `yaml:"webUrl,omitempty"`

	// StoragePath is the shared storage file read by the meeting-room page.
	StoragePath string `yaml:"storagePath,omitempty"`

	Timeout time.Duration `yaml:"timeout,omitempty"`

	// OpenBrowser controls whether joining a meeting launches the system browser.
	OpenBrowser *bool `yaml:"openBrowser,omitempty"`

	TUI *TUIConfig `yaml:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile selects the appearance ("default" or "ascii").
	Profile string `yaml:"profile,omitempty"`
}

// ConfigKeys lists the keys accepted by Set.
var ConfigKeys = []string{"api-url", "web-url", "storage", "timeout", "open-browser", "tui.profile"}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.secretary).
	if v := strings.TrimSpace(os.Getenv(envConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".secretary"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultStoragePath is used when neither flag, env nor config name a storage file.
func DefaultStoragePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storage.sqlite"), nil
}

// LoadConfig returns an empty config when the file does not exist yet.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("save config: nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}

// Set assigns one config key from its command-line string form.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "api-url", "apiurl":
		c.APIURL = value
	case "web-url", "weburl":
		c.WebURL = value
	case "storage", "storagepath":
		c.StoragePath = value
	case "timeout":
		if value == "" {
			c.Timeout = 0
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid timeout %q", value)
		}
		c.Timeout = d
	case "open-browser", "openbrowser":
		if value == "" {
			c.OpenBrowser = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid open-browser %q (expected true or false)", value)
		}
		c.OpenBrowser = &b
	case "tui.profile":
		switch value {
		case "", "default", "ascii":
		default:
			return fmt.Errorf("invalid tui.profile %q (expected default or ascii)", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Profile = value
	default:
		keys := append([]string(nil), ConfigKeys...)
		sort.Strings(keys)
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(keys, ", "))
	}
	return nil
}

// TUIProfile returns the configured profile or "default".
func (c *GlobalConfig) TUIProfile() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Profile) == "" {
		return "default"
	}
	return c.TUI.Profile
}
