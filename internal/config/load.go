package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// AppName names the config file and its search directories.
const AppName = "pingera-mcp"

// EnvPrefix prefixes every environment variable, e.g. PINGERA_API_KEY.
const EnvPrefix = "PINGERA"

// Load builds a Config from defaults, an optional YAML file and PINGERA_*
// environment variables, in increasing order of precedence. An empty path
// searches the working directory, ~/.pingera-mcp and /etc/pingera-mcp.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can bind it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("max_retries", d.MaxRetries)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("server_name", d.ServerName)
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("trace", d.Trace)
	v.SetDefault("normalize.denylist", []string{})
	v.SetDefault("normalize.identifier_fields", []string{})
}

func findConfigFile() string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+AppName))
	}
	dirs = append(dirs, filepath.Join("/etc", AppName))
	return findConfigFileInPaths(dirs)
}

func findConfigFileInPaths(dirs []string) string {
	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			p := filepath.Join(dir, AppName+ext)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}
