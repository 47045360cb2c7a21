package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ips/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	Store       StoreConfig       `mapstructure:"store"`
	KeyMap      map[string]string `mapstructure:"keymap"`
	StylesFile  string            `mapstructure:"styles_file"`
	Prayer      PrayerConfig      `mapstructure:"prayer"`
	Quran       QuranConfig       `mapstructure:"quran"`
	Alarm       AlarmConfig       `mapstructure:"alarm"`
	HTTPTimeout time.Duration     `mapstructure:"http_timeout"`

	// Path is the file the configuration was read from
	Path string `mapstructure:"-"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type PrayerConfig struct {
	City    string `mapstructure:"city"`
	Country string `mapstructure:"country"`
	Method  int    `mapstructure:"method"`
	BaseURL string `mapstructure:"base_url"`
}

type QuranConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type AlarmConfig struct {
	SnoozeMinutes int `mapstructure:"snooze_minutes"`
}

// SnoozeInterval converts the configured minutes to a duration
func (a AlarmConfig) SnoozeInterval() time.Duration {
	if a.SnoozeMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(a.SnoozeMinutes) * time.Minute
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	MutedTextColor    string `json:"muted_text_color"`
	ErrorColor        string `json:"error_color"`

	// Priority and alarm colors
	HighPriorityColor   string `json:"high_priority_color"`
	MediumPriorityColor string `json:"medium_priority_color"`
	LowPriorityColor    string `json:"low_priority_color"`
	AlarmColor          string `json:"alarm_color"`
}

// DefaultStyles matches the built-in theme
func DefaultStyles() Styles {
	return Styles{
		BorderColor:         "240",
		AccentColor:         "35",
		NormalTextColor:     "252",
		SelectedTextColor:   "229",
		SelectedBgColor:     "29",
		MutedTextColor:      "244",
		ErrorColor:          "9",
		HighPriorityColor:   "203",
		MediumPriorityColor: "214",
		LowPriorityColor:    "114",
		AlarmColor:          "196",
	}
}

// DefaultDir is ~/.config/ips
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ips"), nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("store.driver", "sqlite3")
	v.SetDefault("store.dsn", filepath.Join(configDir, "ips.db"))
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))
	v.SetDefault("prayer.city", "London")
	v.SetDefault("prayer.country", "UK")
	v.SetDefault("prayer.method", 2)
	v.SetDefault("prayer.base_url", "http://api.aladhan.com")
	v.SetDefault("quran.base_url", "https://api.alquran.cloud")
	v.SetDefault("alarm.snooze_minutes", 5)
	v.SetDefault("http_timeout", "10s")
}

// Load reads the configuration from configPath, or from
// ~/.config/ips/config.json when it is empty. A missing file is created
// with the defaults. IPS_* environment variables override file values,
// e.g. IPS_PRAYER_CITY or IPS_STORE_DRIVER.
func Load(configPath string) (Config, Styles, error) {
	if configPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, Styles{}, err
		}
		configPath = filepath.Join(dir, "config.json")
	}
	configDir := filepath.Dir(configPath)

	v := viper.New()
	setDefaults(v, configDir)
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("IPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, Styles{}, fmt.Errorf("error reading config: %w", err)
		}
		// First run: write the defaults so the user has something to edit
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return Config{}, Styles{}, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return Config{}, Styles{}, fmt.Errorf("error writing default config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, Styles{}, fmt.Errorf("error decoding config: %w", err)
	}
	config.Path = configPath
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = 10 * time.Second
	}

	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the application styles from the specified path. Colors
// missing from the file keep their defaults.
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := DefaultStyles()

	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return defaultStyles, err
		}

		if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
			return defaultStyles, err
		}
		stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
		if err != nil {
			return defaultStyles, err
		}
		if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
			return defaultStyles, err
		}
		return defaultStyles, nil
	}

	loadedStyles := defaultStyles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}
	return loadedStyles, nil
}
