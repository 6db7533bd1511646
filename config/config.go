package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Auth struct {
		Secret  string `yaml:"secret"`
		ExpHour int    `yaml:"exp_hour"`
	} `yaml:"auth"`
	Providers struct {
		GeminiAPIKey string `yaml:"gemini_api_key"`
		OpenAIAPIKey string `yaml:"openai_api_key"`
		ClaudeAPIKey string `yaml:"claude_api_key"`
	} `yaml:"providers"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// LoadConfig reads and parses the YAML configuration file into GlobalConfig
func LoadConfig(filePath string) error {
	// Read the YAML file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	// Unmarshal YAML into GlobalConfig
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		return err
	}

	// Validate required fields. Provider API keys are deliberately optional:
	// the AI engine degrades to an explanatory fragment when none are set.
	if GlobalConfig.Database.Host == "" {
		log.Fatal("database.host is required in config.yaml")
	}
	if GlobalConfig.Database.User == "" {
		log.Fatal("database.user is required in config.yaml")
	}
	if GlobalConfig.Database.Password == "" {
		log.Fatal("database.password is required in config.yaml")
	}
	if GlobalConfig.Database.DBName == "" {
		log.Fatal("database.dbname is required in config.yaml")
	}
	if GlobalConfig.Database.Port == "" {
		log.Fatal("database.port is required in config.yaml")
	}
	if GlobalConfig.Database.SSLMode == "" {
		log.Fatal("database.sslmode is required in config.yaml")
	}
	if GlobalConfig.Auth.Secret == "" {
		log.Fatal("auth.secret is required in config.yaml")
	}
	if GlobalConfig.Auth.ExpHour == 0 {
		GlobalConfig.Auth.ExpHour = 72
	}
	if GlobalConfig.Uploads.Dir == "" {
		GlobalConfig.Uploads.Dir = "uploads"
	}
	if GlobalConfig.Server.Port == 0 {
		log.Fatal("server.port is required in config.yaml")
	}
	if GlobalConfig.Server.Port < 1 || GlobalConfig.Server.Port > 65535 {
		log.Fatal("server.port must be between 1 and 65535")
	}

	return nil
}
