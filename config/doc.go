// Package config provides configuration loading for httpflow clients.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with .env file support via godotenv. Environment variables
// override file values using underscore-separated paths
// (e.g. CLIENT_BASE_URL binds to client.base_url).
//
// # Usage
//
//	var cfg client.Config
//	err := config.LoadConfig("client", &cfg)
package config
