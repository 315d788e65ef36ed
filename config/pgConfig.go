package config

import (
	"os"
)

// applyEnv overrides secrets and connection settings from the environment.
func (c *AppConfig) applyEnv() {
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("POSTGRES_HOST", orDefault(c.Database.Host, "localhost"))
	c.Database.Port = getEnv("POSTGRES_PORT", orDefault(c.Database.Port, "5432"))
	c.Database.User = getEnv("POSTGRES_USER", orDefault(c.Database.User, "postgres"))
	c.Database.Password = getEnv("POSTGRES_PASSWORD", orDefault(c.Database.Password, "postgres"))
	c.Database.DBName = getEnv("POSTGRES_NAME", orDefault(c.Database.DBName, "postgres"))
	c.Database.Path = getEnv("SQLITE_PATH", c.Database.Path)

	c.BaseLinker.ApiKey = getEnv("BASELINKER_API_KEY", c.BaseLinker.ApiKey)
	c.Allegro.AccessToken = getEnv("ALLEGRO_ACCESS_TOKEN", c.Allegro.AccessToken)
	c.OpenAI.ApiKey = getEnv("OPENAI_API_KEY", c.OpenAI.ApiKey)
	c.MediaRoot = getEnv("MEDIA_ROOT", c.MediaRoot)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func orDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
