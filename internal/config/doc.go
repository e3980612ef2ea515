// Package config loads and validates the server's YAML configuration.
package config
