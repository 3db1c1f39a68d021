package mcpserializer

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
)

// Config holds host-tunable serializer settings. It can be populated from
// the environment, from a TOML file, or constructed directly, then folded
// into options via [Config.Options] and [Config.InitializerOptions].
type Config struct {
	// PageSize for all list methods. ENV: MCP_PAGE_SIZE
	PageSize int `env:"MCP_PAGE_SIZE,default=10" toml:"page_size"`
	// ProtocolVersion advertised by initialize. ENV: MCP_PROTOCOL_VERSION
	ProtocolVersion string `env:"MCP_PROTOCOL_VERSION,default=" toml:"protocol_version"`
	// Instructions returned to clients by initialize. ENV: MCP_INSTRUCTIONS
	Instructions string `env:"MCP_INSTRUCTIONS,default=" toml:"instructions"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds the advertised server identity.
type ServerConfig struct {
	Name    string `env:"MCP_SERVER_NAME,default=" toml:"name"`
	Version string `env:"MCP_SERVER_VERSION,default=" toml:"version"`
	Title   string `env:"MCP_SERVER_TITLE,default=" toml:"title"`
}

// ConfigFromEnv populates a Config from environment variables, with tag
// defaults for anything unset.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config from env: %w", err)
	}
	return cfg, nil
}

// ConfigFromFile populates a Config from a TOML file.
func ConfigFromFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, nil
}

// Options folds the serializer-facing settings into functional options.
func (c Config) Options() []Option {
	var opts []Option
	if c.PageSize > 0 {
		opts = append(opts, WithPageSize(c.PageSize))
	}
	return opts
}

// InitializerOptions folds the initialize-facing settings into functional
// options for NewInitializer.
func (c Config) InitializerOptions() []InitializerOption {
	var opts []InitializerOption
	if c.ProtocolVersion != "" {
		opts = append(opts, WithProtocolVersion(c.ProtocolVersion))
	}
	if c.Instructions != "" {
		opts = append(opts, WithInstructions(c.Instructions))
	}
	if c.Server.Name != "" || c.Server.Version != "" {
		opts = append(opts, WithServerInfo(c.Server.Name, c.Server.Version))
	}
	if c.Server.Title != "" {
		opts = append(opts, WithServerTitle(c.Server.Title))
	}
	return opts
}
