package config

import (
	"time"
)

// Config is the effective whatif configuration
type Config struct {
	DryRun    bool      `koanf:"dry_run"`
	Logging   Logging   `koanf:"logging"`
	Commands  Commands  `koanf:"commands"`
	TempFiles TempFiles `koanf:"tempfiles"`
}

// Logging configures pkg/logging
type Logging struct {
	Verbosity int    `koanf:"verbosity"`
	File      string `koanf:"file"`
}

// Commands configures genuine command execution
type Commands struct {
	Shell   string        `koanf:"shell"`
	Timeout time.Duration `koanf:"timeout"`
}

// TempFiles configures genuine temp-file creation
type TempFiles struct {
	Dir string `koanf:"dir"`
}

// Default returns the embedded defaults
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		// The embedded defaults are part of the binary
		panic(err)
	}
	return cfg
}
