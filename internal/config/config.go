package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"depsiren/internal/registry"
)

// Load initializes settings from an optional config file, the environment
// and a local .env. Every key can be overridden via DEPSIREN_* variables.
func Load() {
	_ = godotenv.Load() // .env is optional

	viper.SetConfigName("depsiren")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DEPSIREN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("cache_ttl", "6h")
	viper.SetDefault("http_timeout", "10s")
	viper.SetDefault("jobs", 8)
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("pypi_url", registry.DefaultPyPIURL)
	viper.SetDefault("npm_registry_url", registry.DefaultNpmRegistryURL)
	viper.SetDefault("npm_downloads_url", registry.DefaultNpmDownloadsURL)

	// Missing config file is the normal case.
	_ = viper.ReadInConfig()
}

// CacheDir resolves the metadata cache directory: the configured override if
// set, otherwise a per-application directory under the platform cache root.
func CacheDir() (string, error) {
	if dir := viper.GetString("cache_dir"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "depsiren"), nil
}

func CacheTTL() time.Duration {
	return viper.GetDuration("cache_ttl")
}

func HTTPTimeout() time.Duration {
	return viper.GetDuration("http_timeout")
}

func Jobs() int {
	return viper.GetInt("jobs")
}

func PyPIURL() string {
	return viper.GetString("pypi_url")
}

func NpmRegistryURL() string {
	return viper.GetString("npm_registry_url")
}

func NpmDownloadsURL() string {
	return viper.GetString("npm_downloads_url")
}
