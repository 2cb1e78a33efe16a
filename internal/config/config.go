package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing markdown and JSON files
	// are overwritten on export
	OverwriteFiles bool
	// DownloadCovers controls whether cover images are fetched on import
	DownloadCovers bool
	// Username is the account reviews and shelf stats are attributed to
	Username string
)

// InitConfig initializes the global configuration
func InitConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("DownloadCovers", true)
	viper.SetDefault("Username", "demo")

	OverwriteFiles = viper.GetBool("OverwriteFiles")
	DownloadCovers = viper.GetBool("DownloadCovers")
	Username = viper.GetString("Username")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetDownloadCovers sets the DownloadCovers flag
func SetDownloadCovers(download bool) {
	DownloadCovers = download
}

// SetUsername overrides the configured username
func SetUsername(username string) {
	if username != "" {
		Username = username
	}
}
