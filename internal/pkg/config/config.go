package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisHost string `yaml:"redis_host"`
	RedisPort string `yaml:"redis_port"`

	BaseUrl string `yaml:"base_url"`
	JWTKey  string `yaml:"jwt_key"`

	// QRExpiryMinutes is the validity window of generated (stamped) QR
	// payloads. Static payloads never expire.
	QRExpiryMinutes int `yaml:"qr_expiry_minutes"`
}

func NewConfig(path string) (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing jwt_key configuration")
	}
	if c.QRExpiryMinutes <= 0 {
		c.QRExpiryMinutes = 5
	}

	return &c, nil
}
