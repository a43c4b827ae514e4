package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration. The state core reads none of it;
// it only shapes the shell around the page.
type Config struct {
	Log         LogConfig
	Journal     JournalConfig
	UI          UIConfig
	Keybindings []KeybindingConfig
}

// LogConfig holds zap settings. An empty Path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// JournalConfig holds the session journal settings.
type JournalConfig struct {
	Path string
	Rows int
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowJournal bool   `mapstructure:"show_journal"`
	ShowHelp    bool   `mapstructure:"show_help"`
	Accent      string `mapstructure:"accent"`
}

// KeybindingConfig rebinds one action to a new key list.
type KeybindingConfig struct {
	Action string   `mapstructure:"action" toml:"action"`
	Keys   []string `mapstructure:"keys" toml:"keys"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("journal.path", ":memory:")
	v.SetDefault("journal.rows", 8)
	v.SetDefault("ui.show_journal", false)
	v.SetDefault("ui.show_help", true)
	v.SetDefault("ui.accent", "pink")
}

// Path returns the config file location: $PANESYNC_CONFIG if set, else
// ~/.config/panesync/config.toml.
func Path() string {
	if p := os.Getenv("PANESYNC_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "panesync", "config.toml")
}

func newViper() *viper.Viper {
	return newViperAt(Path())
}

func newViperAt(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("PANESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix PANESYNC_.
func Load() (Config, error) {
	return load(newViper())
}

func load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil && !isMissing(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Journal.Rows < 0 {
		c.Journal.Rows = 0
	}
	return c, nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("journal.rows", cfg.Journal.Rows)
	v.Set("ui.show_journal", cfg.UI.ShowJournal)
	v.Set("ui.show_help", cfg.UI.ShowHelp)
	v.Set("ui.accent", cfg.UI.Accent)
	if len(cfg.Keybindings) > 0 {
		items := make([]map[string]any, 0, len(cfg.Keybindings))
		for _, kb := range cfg.Keybindings {
			items = append(items, map[string]any{"action": kb.Action, "keys": kb.Keys})
		}
		v.Set("keybindings", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch calls fn with the reloaded config whenever the config file changes.
// Each change is read afresh from disk; a file that fails to parse goes to
// onErr and fn is not called, so the previous config stays in effect.
func Watch(fn func(Config), onErr func(error)) {
	path := Path()
	v := newViperAt(path)
	if err := v.ReadInConfig(); err != nil {
		if !isMissing(err) && onErr != nil {
			onErr(fmt.Errorf("read config: %w", err))
		}
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		c, err := load(newViperAt(path))
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		fn(c)
	})
	v.WatchConfig()
}
