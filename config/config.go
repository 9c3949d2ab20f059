package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the automation pipeline
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Capture   CaptureConfig   `mapstructure:"capture"`
	Recognize RecognizeConfig `mapstructure:"recognize"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Site      SiteConfig      `mapstructure:"site"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// CaptureConfig controls recording sessions and where clips are saved
type CaptureConfig struct {
	SampleRate int    `mapstructure:"sample_rate"`
	OutputDir  string `mapstructure:"output_dir"`
}

// RecognizeConfig points at the speech-to-text service
type RecognizeConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// BrowserConfig is the fixed launch profile for the Chrome session. All of
// it is applied before process launch; none of it is mutable mid-session.
type BrowserConfig struct {
	// UserDataDir is the persistent Chrome profile directory, so the
	// session carries the user's logins (music sites gate playback behind
	// accounts). Empty means a throwaway profile.
	UserDataDir string `mapstructure:"user_data_dir"`
	// ProfileName selects the profile inside UserDataDir.
	ProfileName string `mapstructure:"profile_name"`
	// Headless is off by default: the point is a window the user watches.
	Headless bool `mapstructure:"headless"`
	// LookupTimeout bounds each single element lookup.
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

func (b BrowserConfig) Validate() error {
	if b.LookupTimeout <= 0 {
		return fmt.Errorf("browser.lookup_timeout must be > 0")
	}
	return nil
}

// SiteConfig selects the destination-site profile
type SiteConfig struct {
	Profile string `mapstructure:"profile"`
}

// LoadConfig reads configuration from the given file, or from the default
// search paths when path is empty. A missing file is not an error; the
// tool runs on defaults and SONGWHISPER_* environment overrides alone.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_level", "info")
	v.SetDefault("capture.sample_rate", 44100)
	v.SetDefault("capture.output_dir", ".")
	v.SetDefault("recognize.endpoint", "http://www.google.com/speech-api/v2/recognize")
	v.SetDefault("recognize.api_key", "")
	v.SetDefault("recognize.language", "ko-KR")
	v.SetDefault("recognize.timeout", 20*time.Second)
	v.SetDefault("browser.user_data_dir", "")
	v.SetDefault("browser.profile_name", "Default")
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.lookup_timeout", 3*time.Second)
	v.SetDefault("site.profile", "youtube")

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("SONGWHISPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Browser.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
