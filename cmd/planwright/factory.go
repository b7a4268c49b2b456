package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/planwright/planwright/internal/config"
	"github.com/planwright/planwright/internal/executor"
	"github.com/planwright/planwright/internal/infer"
	"github.com/planwright/planwright/internal/llm"
	"github.com/planwright/planwright/internal/state"
)

// createGenerator builds the Claude generator from configuration.
// With no configured model a current Sonnet is used.
func createGenerator(cfg *config.Config, exposeTools bool) (*llm.AnthropicGenerator, error) {
	model := anthropic.ModelClaudeSonnet4_20250514
	if cfg.Anthropic.Model != "" {
		model = anthropic.Model(cfg.Anthropic.Model)
	}

	gen, err := llm.NewAnthropicGenerator(llm.AnthropicConfig{
		Model:         model,
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
		ExposeTools:   exposeTools,
	})
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	return gen, nil
}

// openStore opens the plan database at the configured path.
func openStore(cfg *config.Config) (*state.Store, error) {
	path := cfg.Store.Path
	if path == "" {
		path = config.DefaultStorePath()
	}
	return state.Open(path)
}

// createExecutor assembles the executor with the configured scheduler,
// progress events, and optional stop-signal watching. The caller owns
// the returned emitter and watcher; the watcher may be nil.
func createExecutor(cfg *config.Config) (*executor.Executor, *executor.EventEmitter, *executor.SignalWatcher) {
	emitter := executor.NewEventEmitter(cfg.Executor.EventBuffer)

	var signals *executor.SignalWatcher
	if cfg.Executor.SignalsDir != "" {
		if sw, err := executor.NewSignalWatcher(cfg.Executor.SignalsDir); err == nil {
			signals = sw
		}
	}

	exec := executor.New(
		executor.WithScheduler(executor.ForStrategy(cfg.Executor.StrategyValue())),
		executor.WithEmitter(emitter),
		executor.WithSignals(signals),
	)
	return exec, emitter, signals
}

// createEngine builds the dependency inference engine from configuration.
func createEngine(cfg *config.Config) *infer.Engine {
	return infer.NewEngine(cfg.Inference, infer.DefaultVocabulary())
}
