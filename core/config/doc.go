// Package config provides configuration management for the Price Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with struct-tag based defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for the product catalog
//   - Storage: S3/MinIO credentials for feed snapshot archiving
//   - Log: Logging level and format
//   - Feed: Marketplace price feed URL and fetch timeout
//   - Reconcile: Fuzzy-match threshold and upsert chunk size
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Feed.URL)
package config
