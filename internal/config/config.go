package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filechooser/internal/chooser"
	"filechooser/internal/errors"
	"filechooser/internal/log"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the picker defaults, button labels, colors and logging.
type Config struct {
	Chooser struct {
		OnlyDirectories bool   `yaml:"only_directories"` // Restrict the picker to directories
		BaseDirectory   string `yaml:"base_directory"`   // First directory shown, empty for the working directory
		ShowHidden      bool   `yaml:"show_hidden"`      // List dot-entries
		Pattern         string `yaml:"pattern"`          // Glob applied to file names
		Watch           bool   `yaml:"watch"`            // Re-list when the directory changes on disk
	} `yaml:"chooser"`
	Labels struct {
		Title  string `yaml:"title"`
		Accept string `yaml:"accept"`
		Cancel string `yaml:"cancel"`
	} `yaml:"labels"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Title and directory color
		Border   string `yaml:"border"`   // Border color for frames
		Accept   string `yaml:"accept"`   // Accept button
		Cancel   string `yaml:"cancel"`   // Cancel button
		DotDot   string `yaml:"dotdot"`   // ".." breadcrumb tag
		Selected string `yaml:"selected"` // Highlight of the selected entry
		Muted    string `yaml:"muted"`    // Hidden entries and help text
	} `yaml:"theme"`
	Logging struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"` // Also write logs here when set
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/filechooser/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filechooser", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/filechooser/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.NewConfigError("cannot locate home directory", "", errors.ConfigNotFound, err)
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	// Theme colors are resolved after parsing so a bare "name: dark" gets
	// the dark palette.
	var blank Config
	cfg.Theme = blank.Theme

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Keys absent from the file keep their defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// A partial theme section is completed from the named theme.
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "default"
	}
	cfg.fillTheme(cfg.Theme.Name)

	// A base directory that went away only loses the starting point, not
	// the rest of the file.
	if base := cfg.Chooser.BaseDirectory; base != "" && !isDirectory(ExpandHome(base)) {
		log.LogWithFields(log.F("path", base), log.F("config", path)).Warn("configured base directory unavailable, starting in the working directory")
		cfg.Chooser.BaseDirectory = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Chooser.OnlyDirectories = false
	cfg.Chooser.ShowHidden = true
	cfg.Chooser.Watch = true

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if _, err := chooser.CompilePattern(c.Chooser.Pattern); err != nil {
		return err
	}

	if base := c.Chooser.BaseDirectory; base != "" {
		info, err := os.Stat(ExpandHome(base))
		if err != nil {
			if os.IsNotExist(err) {
				return errors.NewConfigError("base directory does not exist", "chooser.base_directory", errors.InvalidConfig, nil)
			}
			return errors.NewConfigError("error accessing base directory", "chooser.base_directory", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("base directory is not a directory", "chooser.base_directory", errors.InvalidConfig, nil)
		}
	}

	if c.Theme.Name != "" && !isTheme(c.Theme.Name) {
		return errors.NewConfigError(fmt.Sprintf("unknown theme %q", c.Theme.Name), "theme.name", errors.InvalidConfig, nil)
	}

	return nil
}

// DialogOptions converts the file settings into picker options. The dialog
// starts visible.
func (c *Config) DialogOptions() chooser.Options {
	return chooser.Options{
		Visible:         true,
		OnlyDirectories: c.Chooser.OnlyDirectories,
		BaseDirectory:   ExpandHome(c.Chooser.BaseDirectory),
		Title:           c.Labels.Title,
		AcceptLabel:     c.Labels.Accept,
		CancelLabel:     c.Labels.Cancel,
	}
}

// NewLister builds a lister honoring the hidden-entry and pattern settings.
func (c *Config) NewLister(fsys chooser.FileSystem) (*chooser.Lister, error) {
	l := chooser.NewLister(fsys)
	l.ShowHidden = c.Chooser.ShowHidden
	g, err := chooser.CompilePattern(c.Chooser.Pattern)
	if err != nil {
		return nil, err
	}
	l.Pattern = g
	return l, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"border":   "213", // Purple
		"accept":   "114", // Green
		"cancel":   "196", // Red
		"dotdot":   "39",  // Blue
		"selected": "212", // Light Pink
		"muted":    "245", // Grey
	},
	"dark": {
		"primary":  "105",
		"border":   "105",
		"accept":   "78",
		"cancel":   "160",
		"dotdot":   "33",
		"selected": "147",
		"muted":    "240",
	},
	"light": {
		"primary":  "135",
		"border":   "135",
		"accept":   "150",
		"cancel":   "210",
		"dotdot":   "117",
		"selected": "219",
		"muted":    "250",
	},
	"monochrome": {
		"primary":  "245",
		"border":   "245",
		"accept":   "252",
		"cancel":   "241",
		"dotdot":   "248",
		"selected": "255",
		"muted":    "238",
	},
	"ocean": {
		"primary":  "31",
		"border":   "31",
		"accept":   "36",
		"cancel":   "196",
		"dotdot":   "33",
		"selected": "51",
		"muted":    "244",
	},
	"sunset": {
		"primary":  "208",
		"border":   "208",
		"accept":   "154",
		"cancel":   "196",
		"dotdot":   "69",
		"selected": "203",
		"muted":    "243",
	},
}

func isTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme in the configuration, overwriting every color.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Border = theme["border"]
	c.Theme.Accept = theme["accept"]
	c.Theme.Cancel = theme["cancel"]
	c.Theme.DotDot = theme["dotdot"]
	c.Theme.Selected = theme["selected"]
	c.Theme.Muted = theme["muted"]
}

// fillTheme sets only the colors left empty.
func (c *Config) fillTheme(name string) {
	theme := GetTheme(name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Border, "border")
	fill(&c.Theme.Accept, "accept")
	fill(&c.Theme.Cancel, "cancel")
	fill(&c.Theme.DotDot, "dotdot")
	fill(&c.Theme.Selected, "selected")
	fill(&c.Theme.Muted, "muted")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
