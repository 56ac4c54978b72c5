package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/config"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	registryLine := "built-in defaults"
	if strings.TrimSpace(cfg.RegistryFile) != "" {
		registryLine = cfg.RegistryFile
	}

	return []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Database: %s (%s)", cfg.Database.Driver, cfg.Database.DSN),
		fmt.Sprintf("Keyword registry: %s", registryLine),
		fmt.Sprintf("Quote TTL: %ds", cfg.QuoteTTLSeconds),
		fmt.Sprintf("Refresh spec: %s", cfg.RefreshSpec),
		sectionLine("Fetch config", cfg.Fetch),
		sectionLine("LLM config", cfg.LLM),
	}
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
