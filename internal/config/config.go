// Package config loads the resolver's optional YAML configuration file,
// following the same os.ReadFile + yaml.Unmarshal pattern the teacher's
// gRPC command uses for its own config file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML configuration for resolverd. Every field is
// optional; zero values fall back to the package defaults applied by
// Defaults().
type File struct {
	RootServers     []string `yaml:"root_servers"`
	ServerTimeoutMS int      `yaml:"server_timeout_ms"`
	MaxSteps        int      `yaml:"max_steps"`
	LogFile         string   `yaml:"log_file"`
	Verbose         bool     `yaml:"verbose"`
}

// Defaults returns the configuration resolverd runs with when no file is
// supplied, or when a loaded file leaves fields unset.
func Defaults() File {
	return File{
		ServerTimeoutMS: 2000,
		MaxSteps:        30,
		LogFile:         "output.log",
	}
}

// ServerTimeout returns ServerTimeoutMS as a time.Duration.
func (f File) ServerTimeout() time.Duration {
	return time.Duration(f.ServerTimeoutMS) * time.Millisecond
}

// Load reads and parses a YAML config file at path, merging it over
// Defaults(). A missing RootServers/MaxSteps/ServerTimeoutMS/LogFile in
// the file keeps the default value rather than zeroing it out.
func Load(path string) (File, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	var loaded File
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return File{}, err
	}

	if len(loaded.RootServers) > 0 {
		cfg.RootServers = loaded.RootServers
	}
	if loaded.ServerTimeoutMS > 0 {
		cfg.ServerTimeoutMS = loaded.ServerTimeoutMS
	}
	if loaded.MaxSteps > 0 {
		cfg.MaxSteps = loaded.MaxSteps
	}
	if loaded.LogFile != "" {
		cfg.LogFile = loaded.LogFile
	}
	cfg.Verbose = loaded.Verbose

	return cfg, nil
}
