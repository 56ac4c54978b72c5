package fetch

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/confkit"
)

// Config maps asset categories to adapter configurations.
type Config struct {
	Adapters map[Category]*AdapterConfig `yaml:"adapters"`
}

// AdapterConfig configures a single adapter instance.
type AdapterConfig struct {
	Type string `yaml:"type"`

	BaseURL string `yaml:"base_url"`
	APIBase string `yaml:"api_base"`
	APIKey  string `yaml:"api_key"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
	MaxRetries int           `yaml:"max_retries"`
}

// DefaultConfig covers every category with the stock adapters. The Alpha
// Vantage key is taken from the environment; without it the america_stock
// adapter reports source errors instead of quotes.
func DefaultConfig() *Config {
	tgju := func() *AdapterConfig { return &AdapterConfig{Type: "tgju"} }
	return &Config{Adapters: map[Category]*AdapterConfig{
		CategoryCurrency:   tgju(),
		CategoryGold:       tgju(),
		CategoryCrypto:     tgju(),
		CategoryIranIndex:  tgju(),
		CategoryIranSymbol: tgju(),
		CategoryAmericaStock: {
			Type:   "alphavantage",
			APIKey: os.Getenv("ALPHAVANTAGE_API_KEY"),
		},
	}}
}

// AdapterBuilder constructs an Adapter for one category from configuration.
type AdapterBuilder func(category Category, cfg *AdapterConfig) (Adapter, error)

var (
	builderRegistry   = make(map[string]AdapterBuilder)
	builderRegistryMu sync.RWMutex
)

// RegisterAdapter registers an adapter constructor under a type name.
func RegisterAdapter(typeName string, builder AdapterBuilder) {
	builderRegistryMu.Lock()
	defer builderRegistryMu.Unlock()
	builderRegistry[strings.ToLower(strings.TrimSpace(typeName))] = builder
}

func lookupBuilder(typeName string) (AdapterBuilder, bool) {
	builderRegistryMu.RLock()
	defer builderRegistryMu.RUnlock()
	builder, ok := builderRegistry[strings.ToLower(strings.TrimSpace(typeName))]
	return builder, ok
}

// LoadConfig reads adapter configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fetch config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader parses adapter configuration from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fetch config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal fetch config: %w", err)
	}

	for category, adapterCfg := range cfg.Adapters {
		if adapterCfg == nil {
			return nil, fmt.Errorf("fetch config: adapter %s is empty", category)
		}
		if strings.TrimSpace(adapterCfg.Type) == "" {
			return nil, fmt.Errorf("fetch config: adapter %s missing type", category)
		}
		if adapterCfg.TimeoutRaw != "" {
			timeout, err := time.ParseDuration(adapterCfg.TimeoutRaw)
			if err != nil {
				return nil, fmt.Errorf("fetch config: adapter %s timeout: %w", category, err)
			}
			adapterCfg.Timeout = timeout
		}
	}
	return &cfg, nil
}

// BuildAdapters instantiates the configured adapter per category.
func (c *Config) BuildAdapters() (map[Category]Adapter, error) {
	adapters := make(map[Category]Adapter, len(c.Adapters))
	for category, adapterCfg := range c.Adapters {
		builder, ok := lookupBuilder(adapterCfg.Type)
		if !ok {
			return nil, fmt.Errorf("fetch config: unknown adapter type %q for %s", adapterCfg.Type, category)
		}
		adapter, err := builder(category, adapterCfg)
		if err != nil {
			return nil, fmt.Errorf("fetch config: build adapter %s: %w", category, err)
		}
		adapters[category] = adapter
	}
	return adapters, nil
}
