package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig is the complete server configuration loaded from HCL
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	AI     AISettings     `hcl:"ai,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// AISettings tunes the bot decision loop
type AISettings struct {
	ThinkDelayMinMs int `hcl:"think_delay_min_ms,optional"`
	ThinkDelayMaxMs int `hcl:"think_delay_max_ms,optional"`
}

// DefaultServerConfig returns the configuration used when no file exists
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "holdem-ai.log",
		},
		AI: AISettings{
			ThinkDelayMinMs: 1000,
			ThinkDelayMaxMs: 2000,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file, falling
// back to defaults when the file does not exist.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LogFile == "" {
		config.Server.LogFile = "holdem-ai.log"
	}
	if config.AI.ThinkDelayMinMs == 0 {
		config.AI.ThinkDelayMinMs = 1000
	}
	if config.AI.ThinkDelayMaxMs == 0 {
		config.AI.ThinkDelayMaxMs = 2000
	}
	if config.AI.ThinkDelayMaxMs < config.AI.ThinkDelayMinMs {
		return nil, fmt.Errorf("think_delay_max_ms %d below think_delay_min_ms %d",
			config.AI.ThinkDelayMaxMs, config.AI.ThinkDelayMinMs)
	}

	return &config, nil
}
