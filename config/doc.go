// Package config loads client configuration from YAML files and the
// environment.
//
// Precedence, lowest to highest: config.yml, process environment, .env
// file. Environment keys in UPPER_SNAKE_CASE are bound to the nested
// viper keys a YAML file would produce, so TRITON_SAPI_URL reaches
// triton.sapi_url without explicit binding.
package config
