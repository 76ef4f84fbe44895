// Package config provides centralized configuration for the statistics
// service and the exploration tool.
//
// # Configuration Sources
//
// Values are resolved in the following order, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. A YAML file: BRENT_CONFIG, config.yaml or configs/config.yaml
//  3. Environment variables prefixed with BRENT_
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	BRENT_SERVER_PORT=5000
//	BRENT_DATASET_RETURNS_FILE=data/log_returns.npy
//	BRENT_DATASET_CHANGE_POINT=8357
//	BRENT_LOGGING_LEVEL=debug
//	BRENT_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,https://dash.example.com
//
// Relative paths in a YAML file are resolved against the directory that
// contains the file, so a config can travel with its data.
package config
