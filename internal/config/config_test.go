package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planwright/planwright/pkg/models"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Inference.EnableContentSimilarity ||
		!cfg.Inference.EnableTypeHierarchy ||
		!cfg.Inference.EnableInformationFlow {
		t.Errorf("inference passes not enabled by default: %+v", cfg.Inference)
	}
	if cfg.Inference.MinDependencyCertainty != 0 {
		t.Errorf("min_dependency_certainty default = %v, want 0", cfg.Inference.MinDependencyCertainty)
	}
	if cfg.Inference.MaxDependenciesPerTask != 5 {
		t.Errorf("max_dependencies_per_task default = %v, want 5", cfg.Inference.MaxDependenciesPerTask)
	}
	if cfg.Executor.StrategyValue() != models.StrategySequential {
		t.Errorf("default strategy = %v, want sequential", cfg.Executor.StrategyValue())
	}
	if cfg.Store.Path == "" {
		t.Error("store path default is empty")
	}
}

func TestLoad_UserConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "planwright")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "inference:\n  max_dependencies_per_task: 2\nexecutor:\n  strategy: parallel\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Inference.MaxDependenciesPerTask != 2 {
		t.Errorf("max_dependencies_per_task = %d, want 2 from user config", cfg.Inference.MaxDependenciesPerTask)
	}
	if cfg.Executor.StrategyValue() != models.StrategyParallel {
		t.Errorf("strategy = %v, want parallel", cfg.Executor.StrategyValue())
	}
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-test-123" {
		t.Errorf("api key = %q, want env value", cfg.Anthropic.APIKey)
	}
}

func TestLoad_RejectsBadCertainty(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "planwright")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "inference:\n  min_dependency_certainty: 1.5\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() accepted out-of-range certainty")
	}
}

func TestExecutorConfig_StrategyValue(t *testing.T) {
	tests := []struct {
		raw  string
		want models.ExecutionStrategy
	}{
		{"sequential", models.StrategySequential},
		{"parallel", models.StrategyParallel},
		{"hierarchical", models.StrategyHierarchical},
		{"adaptive", models.StrategyAdaptive},
		{"", models.StrategySequential},
		{"bogus", models.StrategySequential},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := ExecutorConfig{Strategy: tt.raw}
			if got := c.StrategyValue(); got != tt.want {
				t.Errorf("StrategyValue(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
