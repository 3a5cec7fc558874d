// Package config provides configuration management for the Asset Loader.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Loader: base URL, concurrency cap, default execution strategy
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: logging level and format
//   - Database: MySQL connection details for the load history store
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Loader.BaseURL)
package config
