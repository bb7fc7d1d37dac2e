package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Server holds process settings for cmd/api.
type Server struct {
	Port        string   `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	BondDir     string   `mapstructure:"bond_dir"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Server Server `mapstructure:"server"`
	Log    Log    `mapstructure:"log"`
}

func (c ServerConfig) Production() bool { return c.Server.Env == "production" }

// LoadServer reads an optional config file and applies BOND_* environment
// overrides, e.g. BOND_SERVER_PORT=9090 or BOND_LOG_LEVEL=debug.
func LoadServer(path string) (*ServerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read server config %s: %w", path, err)
		}
	}

	var c ServerConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode server config: %w", err)
	}
	// Env values arrive as a single comma-separated string.
	if len(c.Server.CORSOrigins) == 1 && strings.Contains(c.Server.CORSOrigins[0], ",") {
		c.Server.CORSOrigins = splitList(c.Server.CORSOrigins[0])
	}
	if c.Server.Port == "" {
		return nil, fmt.Errorf("server.port is required")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.bond_dir", "examples/bonds")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
