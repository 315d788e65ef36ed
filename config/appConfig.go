package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"sellsheet_api/config/values"
)

type BaseLinkerConfig struct {
	ApiKey            string                 `yaml:"api_key"`
	URL               string                 `yaml:"url"`
	RequestsPerMinute int                    `yaml:"requests_per_minute"`
	Inventory         values.InventoryValues `yaml:"inventory"`
}

type AllegroConfig struct {
	AccessToken string `yaml:"access_token"`
	URL         string `yaml:"url"`
}

type OpenAIConfig struct {
	ApiKey string `yaml:"api_key"`
	URL    string `yaml:"url"`
	Model  string `yaml:"model"`
}

type AppConfig struct {
	BaseLinker BaseLinkerConfig     `yaml:"baselinker"`
	Allegro    AllegroConfig        `yaml:"allegro"`
	OpenAI     OpenAIConfig         `yaml:"openai"`
	Database   DatabaseConfig       `yaml:"database"`
	Pricing    values.PricingValues `yaml:"pricing"`
	Photos     values.PhotoValues   `yaml:"photos"`
	// MediaRoot is the directory photo sets are relative to.
	MediaRoot string `yaml:"media_root"`
	// Language is the default translation target.
	Language string `yaml:"language"`
	// CategoryMapping maps BaseLinker category ids back to Allegro ones.
	CategoryMapping map[string]string `yaml:"category_mapping"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
	}
	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AppConfig) applyDefaults() {
	if c.BaseLinker.URL == "" {
		c.BaseLinker.URL = "https://api.baselinker.com/connector.php"
	}
	if c.BaseLinker.RequestsPerMinute == 0 {
		c.BaseLinker.RequestsPerMinute = 100
	}
	if c.Allegro.URL == "" {
		c.Allegro.URL = "https://api.allegro.pl"
	}
	if c.OpenAI.URL == "" {
		c.OpenAI.URL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Photos.MaxPhotos == 0 {
		c.Photos.MaxPhotos = 12
	}
	if c.Photos.PackSize == 0 {
		c.Photos.PackSize = 4
	}
	if c.Photos.MaxSizeMB == 0 {
		c.Photos.MaxSizeMB = 2
	}
	if c.Photos.FallbackSize == 0 {
		c.Photos.FallbackSize = 800
	}
	if c.Language == "" {
		c.Language = "de"
	}
	c.BaseLinker.Inventory.ApplyDefaults()
}

func (c *AppConfig) Validate() error {
	if c.Pricing.ExchangeRate <= 0 {
		return fmt.Errorf("pricing.exchange_rate must be positive, got %v", c.Pricing.ExchangeRate)
	}
	if c.Pricing.VATMultiplier <= 0 {
		c.Pricing.VATMultiplier = 1.2
	}
	if c.Photos.PackSize < 2 {
		return fmt.Errorf("photos.pack_size must be at least 2, got %d", c.Photos.PackSize)
	}
	return nil
}
