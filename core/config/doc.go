// Package config provides configuration management for the Asset Audit service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for audit archives
//   - Log: Logging level and format
//   - Audit: Scan adapter timings and session engine tunables
//   - Inventory: System-of-record policies (misplaced threshold)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
