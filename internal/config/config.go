package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultServerAddress     = ":8000"
	DefaultProvider          = "gemini"
	DefaultTemperature       = 0.7
	DefaultSystemInstruction = "You are a helpful, professional AI assistant built for a corporate dashboard."
	defaultConfigPath        = "config.json"
)

// DefaultAllowedOrigins are the browser origins permitted to call the relay.
var DefaultAllowedOrigins = []string{
	"https://ai-chatbot-1-tryf.onrender.com",
	"http://localhost:5173",
}

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Chat        ChatConfig                `json:"chat"`
	Providers   map[string]ProviderConfig `json:"providers"`
}

type BasicConfig struct {
	ServerAddress  string   `json:"server_address"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// ChatConfig controls how every relayed message is sent to the model.
type ChatConfig struct {
	Provider          string   `json:"provider"`
	SystemInstruction string   `json:"system_instruction"`
	Temperature       *float32 `json:"temperature"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type providerDefaults struct {
	model  string
	keyEnv string
}

var knownProviders = map[string]providerDefaults{
	"gemini": {model: "gemini-flash-latest", keyEnv: "GOOGLE_API_KEY"},
	"openai": {model: "gpt-4o-mini", keyEnv: "OPENAI_API_KEY"},
	"claude": {model: "claude-3-5-haiku-latest", keyEnv: "ANTHROPIC_API_KEY"},
}

// Load reads configuration from the provided path (defaults to config.json),
// overlays the environment and validates the result. A missing default file is
// fine; every setting has a default except the provider API key.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	var cfg Config
	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.BasicConfig.ServerAddress = ":" + port
	}
	if provider := strings.TrimSpace(os.Getenv("CHATRELAY_PROVIDER")); provider != "" {
		c.Chat.Provider = provider
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
	for name, def := range knownProviders {
		key := os.Getenv(def.keyEnv)
		if key == "" {
			continue
		}
		p := c.Providers[name]
		if p.APIKey == "" {
			p.APIKey = key
			c.Providers[name] = p
		}
	}
}

func (c *Config) applyDefaults() {
	if c.BasicConfig.ServerAddress == "" {
		c.BasicConfig.ServerAddress = DefaultServerAddress
	}
	if len(c.BasicConfig.AllowedOrigins) == 0 {
		c.BasicConfig.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	c.Chat.Provider = strings.ToLower(strings.TrimSpace(c.Chat.Provider))
	if c.Chat.Provider == "" {
		c.Chat.Provider = DefaultProvider
	}
	if c.Chat.SystemInstruction == "" {
		c.Chat.SystemInstruction = DefaultSystemInstruction
	}
	if c.Chat.Temperature == nil {
		t := float32(DefaultTemperature)
		c.Chat.Temperature = &t
	}
	if def, ok := knownProviders[c.Chat.Provider]; ok {
		p := c.Providers[c.Chat.Provider]
		if p.Model == "" {
			p.Model = def.model
			c.Providers[c.Chat.Provider] = p
		}
	}
}

// Validate checks the settings the relay cannot start without.
func (c *Config) Validate() error {
	def, ok := knownProviders[c.Chat.Provider]
	if !ok {
		return fmt.Errorf("invalid provider: %s", c.Chat.Provider)
	}
	if c.Providers[c.Chat.Provider].APIKey == "" {
		return fmt.Errorf("%s is missing. Please check your .env file", def.keyEnv)
	}
	for _, origin := range c.BasicConfig.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("allowed origin %q must start with http:// or https://", origin)
		}
	}
	if t := c.Chat.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", *t)
	}
	return nil
}

// ActiveProvider returns the settings of the selected provider.
func (c *Config) ActiveProvider() ProviderConfig {
	return c.Providers[c.Chat.Provider]
}

// TemperatureValue returns the configured sampling temperature.
func (c ChatConfig) TemperatureValue() float32 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}
