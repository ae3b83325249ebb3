// Package config holds global configuration backed by viper.
package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// GoogleBooksAPIKey is an optional API key appended to Google Books requests.
	GoogleBooksAPIKey string
	// StoreCountry is the Apple Books storefront country code.
	StoreCountry string
	// UserAgent is sent with storefront (HTML) requests only.
	UserAgent string
	// DatabaseFile is the path to the library SQLite database.
	DatabaseFile string
	// CoverDir is the directory cover images are saved under.
	CoverDir string
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("store.country", "TR")
	viper.SetDefault("store.useragent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("library.dbfile", "./libris.db")
	viper.SetDefault("library.coverdir", "./covers")

	GoogleBooksAPIKey = viper.GetString("GoogleBooksAPIKey")
	StoreCountry = viper.GetString("store.country")
	UserAgent = viper.GetString("store.useragent")
	DatabaseFile = viper.GetString("library.dbfile")
	CoverDir = viper.GetString("library.coverdir")
}
