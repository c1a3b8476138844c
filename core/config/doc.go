// Package config provides configuration management for feature-diff.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, run history)
//   - Database: SQL connection details (mysql, postgres, sqlite)
//   - Storage: S3/MinIO endpoint and credentials
//   - Log: Logging level and format
//   - Compare: collation locale, XY tolerance, field names and default output
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.Locale)
package config
