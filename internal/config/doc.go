// Package config loads the application configuration: a YAML file with
// defaults applied after parsing and WZ_* environment overrides on top.
package config
