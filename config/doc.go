// Package config loads service configuration from config.yml, .env files,
// and environment variables, in increasing order of precedence.
//
//	var cfg config.AppConfig
//	if err := config.Load("meetscribe", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
