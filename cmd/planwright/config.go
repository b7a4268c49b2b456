package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify planwright configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/planwright/config.yaml
Project-specific overrides can be placed in .planwright/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
	fmt.Printf("anthropic.aws_profile: %s\n", cfg.Anthropic.AWSProfile)
	fmt.Printf("inference.enable_content_similarity: %t\n", cfg.Inference.EnableContentSimilarity)
	fmt.Printf("inference.enable_type_hierarchy: %t\n", cfg.Inference.EnableTypeHierarchy)
	fmt.Printf("inference.enable_information_flow: %t\n", cfg.Inference.EnableInformationFlow)
	fmt.Printf("inference.min_dependency_certainty: %g\n", cfg.Inference.MinDependencyCertainty)
	fmt.Printf("inference.max_dependencies_per_task: %d\n", cfg.Inference.MaxDependenciesPerTask)
	fmt.Printf("executor.strategy: %s\n", cfg.Executor.Strategy)
	fmt.Printf("executor.signals_dir: %s\n", cfg.Executor.SignalsDir)
	fmt.Printf("executor.event_buffer: %d\n", cfg.Executor.EventBuffer)
	fmt.Printf("store.path: %s\n", cfg.Store.Path)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseAWSBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "inference.enable_content_similarity":
		return strconv.FormatBool(cfg.Inference.EnableContentSimilarity), nil
	case "inference.enable_type_hierarchy":
		return strconv.FormatBool(cfg.Inference.EnableTypeHierarchy), nil
	case "inference.enable_information_flow":
		return strconv.FormatBool(cfg.Inference.EnableInformationFlow), nil
	case "inference.min_dependency_certainty":
		return strconv.FormatFloat(cfg.Inference.MinDependencyCertainty, 'g', -1, 64), nil
	case "inference.max_dependencies_per_task":
		return strconv.Itoa(cfg.Inference.MaxDependenciesPerTask), nil
	case "executor.strategy":
		return cfg.Executor.Strategy, nil
	case "executor.signals_dir":
		return cfg.Executor.SignalsDir, nil
	case "executor.event_buffer":
		return strconv.Itoa(cfg.Executor.EventBuffer), nil
	case "store.path":
		return cfg.Store.Path, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for use_bedrock: %w", err)
		}
		cfg.Anthropic.UseAWSBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "inference.enable_content_similarity":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for enable_content_similarity: %w", err)
		}
		cfg.Inference.EnableContentSimilarity = b
	case "inference.enable_type_hierarchy":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for enable_type_hierarchy: %w", err)
		}
		cfg.Inference.EnableTypeHierarchy = b
	case "inference.enable_information_flow":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for enable_information_flow: %w", err)
		}
		cfg.Inference.EnableInformationFlow = b
	case "inference.min_dependency_certainty":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for min_dependency_certainty: %w", err)
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("min_dependency_certainty must be in [0,1], got %v", f)
		}
		cfg.Inference.MinDependencyCertainty = f
	case "inference.max_dependencies_per_task":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_dependencies_per_task: %w", err)
		}
		cfg.Inference.MaxDependenciesPerTask = n
	case "executor.strategy":
		cfg.Executor.Strategy = value
	case "executor.signals_dir":
		cfg.Executor.SignalsDir = value
	case "executor.event_buffer":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for event_buffer: %w", err)
		}
		cfg.Executor.EventBuffer = n
	case "store.path":
		cfg.Store.Path = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
