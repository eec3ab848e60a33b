// Package config provides configuration loading and validation for gitpulse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

// Sentinel validation errors.
var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLimit    = errors.New("contributors limit must not be negative")
	ErrInvalidTop      = errors.New("top count must be positive")
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPlot = "plot"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatPlot}

const (
	configName = ".gitpulse"
	envPrefix  = "GITPULSE"
)

// Config holds all gitpulse settings.
type Config struct {
	Calendar     CalendarConfig     `mapstructure:"calendar"`
	Contributors ContributorsConfig `mapstructure:"contributors"`
	Languages    LanguagesConfig    `mapstructure:"languages"`
	Scan         ScanConfig         `mapstructure:"scan"`
	Size         SizeConfig         `mapstructure:"size"`
	Output       OutputConfig       `mapstructure:"output"`
}

// CalendarConfig controls the activity calendar.
type CalendarConfig struct {
	Timezone  string `mapstructure:"timezone"`
	WeekStart string `mapstructure:"week_start"`
}

// ContributorsConfig controls the author ranking.
type ContributorsConfig struct {
	// Limit caps the commits scanned; 0 scans the whole history.
	Limit int `mapstructure:"limit"`
	Top   int `mapstructure:"top"`
}

// LanguagesConfig controls the language breakdown.
type LanguagesConfig struct {
	Top       int  `mapstructure:"top"`
	Gitignore bool `mapstructure:"gitignore"`
}

// ScanConfig holds the language scanner exclude patterns.
type ScanConfig struct {
	Exclude []string `mapstructure:"exclude"`
}

// SizeConfig holds the size measurement exclude patterns.
type SizeConfig struct {
	Exclude []string `mapstructure:"exclude"`
}

// OutputConfig controls presentation.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches the working directory and
// $HOME/.config/gitpulse for .gitpulse.yaml; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", "gitpulse"))
		}
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Calendar:     CalendarConfig{Timezone: DefaultTimezone, WeekStart: DefaultWeekStart},
		Contributors: ContributorsConfig{Limit: DefaultContributorsLimit, Top: DefaultContributorsTop},
		Languages:    LanguagesConfig{Top: DefaultLanguagesTop, Gitignore: DefaultLanguagesGitignore},
		Scan:         ScanConfig{Exclude: DefaultScanExclude()},
		Size:         SizeConfig{Exclude: DefaultSizeExclude()},
		Output:       OutputConfig{Format: DefaultOutputFormat, Color: DefaultOutputColor},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("calendar.timezone", DefaultTimezone)
	viperCfg.SetDefault("calendar.week_start", DefaultWeekStart)

	viperCfg.SetDefault("contributors.limit", DefaultContributorsLimit)
	viperCfg.SetDefault("contributors.top", DefaultContributorsTop)

	viperCfg.SetDefault("languages.top", DefaultLanguagesTop)
	viperCfg.SetDefault("languages.gitignore", DefaultLanguagesGitignore)

	viperCfg.SetDefault("scan.exclude", DefaultScanExclude())
	viperCfg.SetDefault("size.exclude", DefaultSizeExclude())

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultOutputColor)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := c.FirstWeekday(); err != nil {
		return err
	}

	if c.Contributors.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, c.Contributors.Limit)
	}

	if c.Contributors.Top <= 0 {
		return fmt.Errorf("%w: contributors.top=%d", ErrInvalidTop, c.Contributors.Top)
	}

	if c.Languages.Top <= 0 {
		return fmt.Errorf("%w: languages.top=%d", ErrInvalidTop, c.Languages.Top)
	}

	return ValidateFormat(c.Output.Format)
}

// ValidateFormat reports whether format names a known output format.
func ValidateFormat(format string) error {
	for _, known := range Formats {
		if format == known {
			return nil
		}
	}

	return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidFormat, format, strings.Join(Formats, ", "))
}

// Location resolves calendar.timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	return ParseLocation(c.Calendar.Timezone)
}

// FirstWeekday resolves calendar.week_start.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	day, err := activity.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday, fmt.Errorf("calendar.week_start: %w", err)
	}

	return day, nil
}

// ParseLocation loads an IANA zone name.
func ParseLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, DefaultTimezone) {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, name, err)
	}

	return loc, nil
}
