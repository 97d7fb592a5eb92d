package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`
	LLM struct {
		APIKey    string `yaml:"api_key"`
		ModelName string `yaml:"model_name"`
	} `yaml:"llm"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = ":8001"
	}

	if config.LLM.ModelName == "" {
		config.LLM.ModelName = "gemini-2.0-flash"
	}

	// Expand environment variables in secrets
	config.Auth.Secret = os.ExpandEnv(config.Auth.Secret)
	config.LLM.APIKey = os.ExpandEnv(config.LLM.APIKey)

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret must be set")
	}

	return config, nil
}
