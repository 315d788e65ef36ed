package config

import (
	"fmt"
)

type DbConfig interface {
	GetConnectionString() string
	GetDriver() string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig represents the configuration needed to connect to the translation store
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// Path is used by the sqlite driver only.
	Path string `yaml:"path"`
}

func (dc DatabaseConfig) GetDriver() string {
	if dc.Driver == "" {
		return DriverPostgres
	}
	return dc.Driver
}

func (dc DatabaseConfig) GetConnectionString() string {
	if dc.GetDriver() == DriverSQLite {
		return dc.Path
	}
	sslMode := dc.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.DBName, sslMode)
}
