// Package config handles configuration loading for planwright.
// It supports XDG config paths, project-level overrides, and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/planwright/planwright/internal/infer"
	"github.com/planwright/planwright/pkg/models"
)

// Config holds all configuration for planwright.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Inference infer.Config    `mapstructure:"inference"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	Store     StoreConfig     `mapstructure:"store"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	UseAWSBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion     string `mapstructure:"aws_region"`
	AWSProfile    string `mapstructure:"aws_profile"`
}

// ExecutorConfig holds execution settings.
type ExecutorConfig struct {
	// Strategy selects the task ordering: sequential or one of the
	// topological-fallback strategies.
	Strategy string `mapstructure:"strategy"`
	// SignalsDir is the directory watched for operator stop signals.
	// Empty disables signal checking.
	SignalsDir string `mapstructure:"signals_dir"`
	// EventBuffer is the progress event channel capacity.
	EventBuffer int `mapstructure:"event_buffer"`
}

// StoreConfig holds plan store settings.
type StoreConfig struct {
	// Path is the SQLite database location. Empty uses the XDG data dir.
	Path string `mapstructure:"path"`
}

// Strategy returns the configured execution strategy as a model value.
func (c ExecutorConfig) StrategyValue() models.ExecutionStrategy {
	switch c.Strategy {
	case string(models.StrategyParallel):
		return models.StrategyParallel
	case string(models.StrategyHierarchical):
		return models.StrategyHierarchical
	case string(models.StrategyAdaptive):
		return models.StrategyAdaptive
	default:
		return models.StrategySequential
	}
}

// Load loads configuration with the following precedence, highest first:
// environment variables (PLANWRIGHT_*, ANTHROPIC_API_KEY), project
// config (.planwright/config.yaml upward from the working directory),
// user config ($XDG_CONFIG_HOME/planwright/config.yaml), defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("PLANWRIGHT")
	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the user config file, creating the
// directory if needed. Project overrides are never written back.
func Save(cfg *Config) error {
	dir := userConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseAWSBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("inference.enable_content_similarity", cfg.Inference.EnableContentSimilarity)
	v.Set("inference.enable_type_hierarchy", cfg.Inference.EnableTypeHierarchy)
	v.Set("inference.enable_information_flow", cfg.Inference.EnableInformationFlow)
	v.Set("inference.min_dependency_certainty", cfg.Inference.MinDependencyCertainty)
	v.Set("inference.max_dependencies_per_task", cfg.Inference.MaxDependenciesPerTask)
	v.Set("executor.strategy", cfg.Executor.Strategy)
	v.Set("executor.signals_dir", cfg.Executor.SignalsDir)
	v.Set("executor.event_buffer", cfg.Executor.EventBuffer)
	v.Set("store.path", cfg.Store.Path)

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Inference.MinDependencyCertainty < 0 || c.Inference.MinDependencyCertainty > 1 {
		return fmt.Errorf("inference.min_dependency_certainty must be in [0,1], got %v",
			c.Inference.MinDependencyCertainty)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := infer.DefaultConfig()
	v.SetDefault("inference.enable_content_similarity", def.EnableContentSimilarity)
	v.SetDefault("inference.enable_type_hierarchy", def.EnableTypeHierarchy)
	v.SetDefault("inference.enable_information_flow", def.EnableInformationFlow)
	v.SetDefault("inference.min_dependency_certainty", def.MinDependencyCertainty)
	v.SetDefault("inference.max_dependencies_per_task", def.MaxDependenciesPerTask)
	v.SetDefault("executor.strategy", string(models.StrategySequential))
	v.SetDefault("executor.event_buffer", 64)
	v.SetDefault("store.path", DefaultStorePath())
}

// userConfigDir returns the XDG config directory for planwright.
func userConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "planwright")
}

// DefaultStorePath returns the XDG data path for the plan database.
func DefaultStorePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "planwright", "plans.db")
}

// findProjectConfig walks upward from the working directory looking for
// .planwright/config.yaml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".planwright", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
