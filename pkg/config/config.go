// Package config describes the serializable settings of a snapshot store
// instance.
package config

import (
	"github.com/spf13/viper"
)

// Store settings, as read from a config file or environment.
//
// Field names must match their serialized names for viper to unmarshal them.
type Store struct {
	// CacheSize is the number of dataset values held in memory
	CacheSize int `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"`

	// StagingPath is the directory durable spill records live in. Empty
	// means a fresh unique directory under the system temp directory.
	StagingPath string `json:"staging_path" yaml:"staging_path" mapstructure:"staging_path"`

	// DefaultBranch seeded at construction
	DefaultBranch string `json:"default_branch" yaml:"default_branch" mapstructure:"default_branch"`

	// LogLevel for the store logger: info, debug or none
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Default store settings
func Default() Store {
	return Store{
		CacheSize:     5,
		DefaultBranch: "main",
		LogLevel:      "none",
	}
}

// FromViper unmarshals store settings from a viper instance, on top of the
// defaults.
func FromViper(v *viper.Viper) (Store, error) {
	cfg := Default()
	if v == nil {
		return cfg, nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Store{}, err
	}
	return cfg, nil
}

// Load reads store settings from a yaml config file
func Load(path string) (Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Store{}, err
	}
	return FromViper(v)
}
