package config

import (
	"strings"

	"github.com/arthur-debert/whatif/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// fileFormat is the on-disk shape of Config. Durations are written as
// text so the file reads back through the same decode hooks.
type fileFormat struct {
	DryRun  bool `toml:"dry_run"`
	Logging struct {
		Verbosity int    `toml:"verbosity"`
		File      string `toml:"file"`
	} `toml:"logging"`
	Commands struct {
		Shell   string `toml:"shell"`
		Timeout string `toml:"timeout"`
	} `toml:"commands"`
	TempFiles struct {
		Dir string `toml:"dir"`
	} `toml:"tempfiles"`
}

// Generate renders cfg as a TOML config file
func Generate(cfg *Config) (string, error) {
	var out fileFormat
	out.DryRun = cfg.DryRun
	out.Logging.Verbosity = cfg.Logging.Verbosity
	out.Logging.File = cfg.Logging.File
	out.Commands.Shell = cfg.Commands.Shell
	out.Commands.Timeout = cfg.Commands.Timeout.String()
	out.TempFiles.Dir = cfg.TempFiles.Dir

	data, err := toml.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

// GenerateCommented renders cfg with every value commented out, ready to be
// edited into a user config file
func GenerateCommented(cfg *Config) (string, error) {
	content, err := Generate(cfg)
	if err != nil {
		return "", err
	}
	return "# whatif configuration\n" + commentOutConfigValues(content), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines, comments and section headers as-is
		if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
			(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
