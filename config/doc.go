// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// All settings are optional; the backend client supplies its own defaults
// for anything left at zero.
package config
