package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options holds optional explicit file paths for Load.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load loads configuration for a service into cfg. It reads config.yml and a
// .env file from standard locations unless explicit paths are given, then
// overlays environment variables, and unmarshals the merged result.
func Load(serviceName string, cfg interface{}, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.ConfigFile == "" {
		o.ConfigFile = findFirst(configSearchPaths(serviceName))
	}
	if o.EnvFile == "" {
		o.EnvFile = findFirst(envSearchPaths(serviceName))
	}

	v := viper.New()

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", o.ConfigFile, err)
		}
	}

	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", o.EnvFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config for service %s: %w", serviceName, err)
	}
	return nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("../cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf(".env.%s", serviceName),
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		".env",
	}
}

func findFirst(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnvVars mirrors every environment variable into viper under nested key
// variants so SERVER_PORT resolves as both "server_port" and "server.port".
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, key := range envKeyVariants(pair[0]) {
			v.Set(key, pair[1])
		}
	}
}

// envKeyVariants turns PROVIDERS_REPORT_API_KEY into
// [providers_report_api_key, providers.report.api.key, providers.report.api_key, ...].
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{
		lower,
		strings.ReplaceAll(lower, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, k := range variants {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
