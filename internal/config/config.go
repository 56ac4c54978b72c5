package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/confkit"
	fetchpkg "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	llmpkg "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

// DatabaseConf selects the series cache backend. The sqlite default needs no
// external service; a postgres DSN switches the same schema to pgx.
type DatabaseConf struct {
	// Driver is sqlite or pgx.
	Driver string `json:",default=sqlite"`
	DSN    string `json:",default=data/chatbot.db"`
}

type Config struct {
	rest.RestConf

	// Env indicates the running environment: dev | prod. Defaults to dev.
	Env string `json:",default=dev"`

	Database DatabaseConf `json:",optional"`

	// RegistryFile points at a keyword registry YAML; empty means built-in
	// defaults.
	RegistryFile string `json:",optional"`

	// QuoteTTLSeconds bounds live quote memoization.
	QuoteTTLSeconds int `json:",default=120"`

	// RefreshSpec is the cron schedule for the background series refresher.
	RefreshSpec string `json:",default=0 30 * * * *"`

	Fetch confkit.Section[fetchpkg.Config] `json:",optional"`
	LLM   confkit.Section[llmpkg.Config]   `json:",optional"`

	mainPath string
	baseDir  string
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of dev|prod")
	}

	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "sqlite", "pgx":
	default:
		return errors.New("config: database driver must be sqlite or pgx")
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn is required")
	}

	if c.QuoteTTLSeconds <= 0 {
		return errors.New("config: quoteTTLSeconds must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.Fetch.Hydrate(base, fetchpkg.LoadConfig); err != nil {
		return fmt.Errorf("load fetch config: %w", err)
	}
	if err := c.LLM.Hydrate(base, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
