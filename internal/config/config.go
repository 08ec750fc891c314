package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Taxonomy sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Log levels.
const (
	LogNone   = "none"
	LogNormal = "normal"
	LogDebug  = "debug"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Taxonomy TaxonomyConfig
	UI       UIConfig
	Log      LogConfig
	Debug    DebugConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// TaxonomyConfig selects where the library tree is read from at startup.
type TaxonomyConfig struct {
	Source string
	Path   string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title                 string
	SidebarWidth          int                 `mapstructure:"sidebar_width"`
	SidebarCollapsedWidth int                 `mapstructure:"sidebar_collapsed_width"`
	PanelWidth            int                 `mapstructure:"panel_width"`
	StartCollapsed        bool                `mapstructure:"start_collapsed"`
	Keys                  map[string][]string `mapstructure:"keys"`
}

// LogConfig controls the file logger. The terminal belongs to the TUI so
// there is no console logger.
type LogConfig struct {
	Level string
	Path  string
	Mode  string
}

type DebugConfig struct {
	Strict bool
}

func home() string {
	return os.Getenv("HOME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "medilearn", "medilearn.db"))
	v.SetDefault("taxonomy.source", SourceDatabase)
	v.SetDefault("taxonomy.path", "")
	v.SetDefault("ui.title", "MediLearn")
	v.SetDefault("ui.sidebar_width", 24)
	v.SetDefault("ui.sidebar_collapsed_width", 5)
	v.SetDefault("ui.panel_width", 28)
	v.SetDefault("ui.start_collapsed", false)
	v.SetDefault("log.level", LogNormal)
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "medilearn", "medilearn.log"))
	v.SetDefault("log.mode", "append")
	v.SetDefault("debug.strict", false)
}

// DefaultPath is where Load looks when MEDILEARN_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(home(), ".config", "medilearn", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix("MEDILEARN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the built-in defaults with MEDILEARN_ env overrides applied
// and no config file read.
func Default() (Config, error) {
	return decode(newViper())
}

// Load reads configuration from file and env. Env var overrides use prefix
// MEDILEARN_. An explicit path wins over MEDILEARN_CONFIG, which wins over
// DefaultPath. A missing default file is not an error; a missing explicit
// one is.
func Load(path string) (Config, error) {
	v := newViper()

	explicit := path
	if explicit == "" {
		explicit = os.Getenv("MEDILEARN_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// Validate rejects values the rest of the program cannot act on.
func (c Config) Validate() error {
	switch c.Taxonomy.Source {
	case SourceBuiltin, SourceDatabase:
	case SourceFile:
		if strings.TrimSpace(c.Taxonomy.Path) == "" {
			return fmt.Errorf("config: taxonomy.path is required when taxonomy.source is %q", SourceFile)
		}
	default:
		return fmt.Errorf("config: unknown taxonomy.source %q", c.Taxonomy.Source)
	}
	switch c.Log.Level {
	case LogNone, LogNormal, LogDebug:
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	switch c.Log.Mode {
	case "append", "overwrite":
	default:
		return fmt.Errorf("config: unknown log.mode %q", c.Log.Mode)
	}
	if c.UI.SidebarWidth < c.UI.SidebarCollapsedWidth || c.UI.SidebarCollapsedWidth < 3 {
		return fmt.Errorf("config: sidebar widths %d/%d out of range", c.UI.SidebarWidth, c.UI.SidebarCollapsedWidth)
	}
	if c.UI.PanelWidth < 10 {
		return fmt.Errorf("config: ui.panel_width %d too small", c.UI.PanelWidth)
	}
	return nil
}

// Save writes the provided config to path (DefaultPath when empty), creating
// the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("taxonomy.source", cfg.Taxonomy.Source)
	v.Set("taxonomy.path", cfg.Taxonomy.Path)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.sidebar_width", cfg.UI.SidebarWidth)
	v.Set("ui.sidebar_collapsed_width", cfg.UI.SidebarCollapsedWidth)
	v.Set("ui.panel_width", cfg.UI.PanelWidth)
	v.Set("ui.start_collapsed", cfg.UI.StartCollapsed)
	if len(cfg.UI.Keys) > 0 {
		v.Set("ui.keys", cfg.UI.Keys)
	}
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.mode", cfg.Log.Mode)
	v.Set("debug.strict", cfg.Debug.Strict)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
