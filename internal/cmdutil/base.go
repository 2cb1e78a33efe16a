// Package cmdutil holds setup logic shared by the CLI commands.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OutputConfig resolves where a command writes its markdown and JSON
// output, falling back from flags to config to defaults.
type OutputConfig struct {
	OutputDir  string
	ConfigKey  string
	JSONOutput string
	WriteJSON  bool
}

// SetupOutputDir resolves and creates the output directories for a
// command.
func SetupOutputDir(cfg *OutputConfig) error {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = viper.GetString(cfg.ConfigKey + ".output")
	}
	if outputDir == "" && cfg.ConfigKey != "" {
		outputDir = cfg.ConfigKey
	}

	baseDir := viper.GetString("markdownoutputdir")
	if baseDir == "" {
		baseDir = "markdown"
	}
	cfg.OutputDir = filepath.Clean(filepath.Join(baseDir, outputDir))

	if cfg.WriteJSON && cfg.JSONOutput == "" {
		jsonBaseDir := viper.GetString("jsonoutputdir")
		if jsonBaseDir == "" {
			jsonBaseDir = "json"
		}
		cfg.JSONOutput = filepath.Clean(filepath.Join(jsonBaseDir, cfg.ConfigKey+".json"))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if cfg.WriteJSON {
		if err := os.MkdirAll(filepath.Dir(cfg.JSONOutput), 0755); err != nil {
			return fmt.Errorf("failed to create JSON output directory: %w", err)
		}
	}
	return nil
}

// DatabasePath resolves the catalog database location from config.
func DatabasePath() string {
	path := viper.GetString("catalog.dbfile")
	if path == "" {
		path = "./shelfdex.db"
	}
	return path
}
