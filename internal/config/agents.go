package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentTimeout = "ZELDA_AGENT_TIMEOUT"

	primaryEnvPrefix   = "ZELDA_AGENT_PRIMARY_"
	secondaryEnvPrefix = "ZELDA_AGENT_SECONDARY_"
)

// AgentsConfig holds the twin extraction agent pair. Primary takes merge
// priority over Secondary when both return data for a section.
type AgentsConfig struct {
	Timeout   string               `toml:"timeout"`
	Primary   gaconfig.AgentConfig `toml:"primary"`
	Secondary gaconfig.AgentConfig `toml:"secondary"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *AgentsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// to both agents.
func (c *AgentsConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if v := os.Getenv(EnvAgentTimeout); v != "" {
		c.Timeout = v
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	if c.Primary.Name == "" {
		c.Primary.Name = "primary"
	}
	if c.Secondary.Name == "" {
		c.Secondary.Name = "secondary"
	}

	if err := finalizeAgent(&c.Primary, primaryEnvPrefix); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	if err := finalizeAgent(&c.Secondary, secondaryEnvPrefix); err != nil {
		return fmt.Errorf("secondary: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentsConfig) Merge(overlay *AgentsConfig) {
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	c.Primary.Merge(&overlay.Primary)
	c.Secondary.Merge(&overlay.Secondary)
}

// finalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: library defaults, environment variable overrides under the
// given prefix, and validation.
func finalizeAgent(c *gaconfig.AgentConfig, envPrefix string) error {
	loadAgentDefaults(c)
	loadAgentEnv(c, envPrefix)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig, envPrefix string) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(envPrefix + "PROVIDER_NAME"); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "MODEL_NAME"); v != "" {
		c.Model.Name = v
	}

	setOption := func(envSuffix, key string) {
		if v := os.Getenv(envPrefix + envSuffix); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption("TOKEN", "token")
	setOption("DEPLOYMENT", "deployment")
	setOption("API_VERSION", "api_version")
	setOption("AUTH_TYPE", "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
