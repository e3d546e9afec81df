package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file lookups so tests can run without touching
// the real working directory.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load populates cfg for the named client. Without explicit overrides
// it searches the working directory and ./config for config.yml and a
// .env.<name> or .env file.
func Load(name string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findFirst(lc.FileSystem, configSearchPaths(name))
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFirst(lc.FileSystem, envSearchPaths(name))
	}

	v := viper.New()

	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return fmt.Errorf("config: load %s: %w", lc.EnvFile, err)
		}
		// Pick up variables the .env file introduced.
		bindEnvVars(v)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", name, err)
	}
	return nil
}

func configSearchPaths(name string) []string {
	return []string{
		fmt.Sprintf("./config/%s.yml", name),
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths(name string) []string {
	return []string{
		fmt.Sprintf("./.env.%s", name),
		fmt.Sprintf("./config/.env.%s", name),
		"./.env",
		"./config/.env",
	}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnvVars maps every UPPER_SNAKE_CASE environment variable onto the
// viper keys a nested YAML document would produce.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an env var can map
// to. TRITON_SAPI_URL becomes triton_sapi_url, triton.sapi.url,
// triton.sapi_url and triton.sapi.url's intermediate splits.
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.ReplaceAll(lower, "_", ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, s := range variants {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
