package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where and how the engine persists its state.
type Config interface {
	BasePath() string
	Driver() string
	Namespace() string
}

// Settings carries the engine tunables loaded alongside the store location.
type Settings struct {
	Path           string        `json:"path"`
	DriverName     string        `json:"driver"`
	NamespaceName  string        `json:"namespace"`
	Poll           time.Duration `json:"poll"`
	Slack          time.Duration `json:"slack"`
	RelapseDisplay string        `json:"relapse_display"`
}

const (
	DefaultNamespace = "recovery"
	DefaultPoll      = time.Minute
	DefaultSlack     = 2 * time.Second
)

// LoadConfig reads .streak.yaml from $STREAK_CONFIG_PATH or the working
// directory, overlaid by STREAK_* environment variables.
func LoadConfig() (*Settings, error) {
	viper.SetDefault("path", "~/.streak.db")
	viper.SetDefault("driver", DriverDiskv)
	viper.SetDefault("namespace", DefaultNamespace)
	viper.SetDefault("poll", DefaultPoll)
	viper.SetDefault("slack", DefaultSlack)
	viper.SetDefault("relapse_display", "show")
	viper.SetConfigName(".streak") // .yaml is implicit
	viper.SetEnvPrefix("STREAK")
	viper.AutomaticEnv()

	if override := os.Getenv("STREAK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Settings{
		Path:           path,
		DriverName:     viper.GetString("driver"),
		NamespaceName:  viper.GetString("namespace"),
		Poll:           viper.GetDuration("poll"),
		Slack:          viper.GetDuration("slack"),
		RelapseDisplay: viper.GetString("relapse_display"),
	}, nil
}

func (s *Settings) BasePath() string {
	return s.Path
}

func (s *Settings) Driver() string {
	return s.DriverName
}

func (s *Settings) Namespace() string {
	if s.NamespaceName == "" {
		return DefaultNamespace
	}
	return s.NamespaceName
}
