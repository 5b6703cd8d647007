// Package config loads configuration for programs built on this module.
//
// Values come from a YAML file (found next to the program or passed
// explicitly), then from a .env file, then from prefixed environment
// variables. SENTIMENT_DATA_TRAIN overrides data.train for a program named
// "sentiment".
//
//	var cfg AppConfig
//	err := config.LoadConfig("sentiment", &cfg, config.WithConfigFile(path))
//
// Every config section follows the same pattern: ApplyDefaults fills zero
// values, Validate reports the first invalid field.
package config
