package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/eddcli.log"`
}

// DatabaseConfig describes the read-only reference database connection.
// Server and Name are normally supplied on the command line and override
// whatever the environment or config file carries.
type DatabaseConfig struct {
	Server   string `yaml:"server" envconfig:"SERVER" default:"localhost"`
	Port     int    `yaml:"port" envconfig:"PORT" default:"5432"`
	Name     string `yaml:"name" envconfig:"NAME"`
	User     string `yaml:"user" envconfig:"USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	SSLMode  string `yaml:"sslmode" envconfig:"SSLMODE" default:"disable"`
}

// ConnString builds the pgx connection string for the reference database.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Server, d.Port, d.Name, d.SSLMode)
}

// Load loads configuration from environment variables (prefix EDD) and, when
// present, an eddcli.yaml file in the working directory. Environment values
// take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EDD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("EDD_CONFIG_FILE"); path != "" {
		return path
	}
	return "eddcli.yaml"
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Database.Server == "" {
		envConfig.Database.Server = fileConfig.Database.Server
	}
	if envConfig.Database.Port == 0 {
		envConfig.Database.Port = fileConfig.Database.Port
	}
	if envConfig.Database.Name == "" {
		envConfig.Database.Name = fileConfig.Database.Name
	}
	if envConfig.Database.User == "" {
		envConfig.Database.User = fileConfig.Database.User
	}
	if envConfig.Database.Password == "" {
		envConfig.Database.Password = fileConfig.Database.Password
	}
	if envConfig.Database.SSLMode == "" {
		envConfig.Database.SSLMode = fileConfig.Database.SSLMode
	}
	return envConfig
}
