package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/suitability-engine/internal/compliance"
	"github.com/sells-group/suitability-engine/internal/engine"
	"github.com/sells-group/suitability-engine/internal/store"
	"github.com/sells-group/suitability-engine/pkg/anthropic"
)

// env bundles the wired dependencies a command needs.
type env struct {
	Store  store.Store
	Engine *engine.Engine
}

// initEnv opens the configured store, runs migrations, and builds the
// engine with the configured responder.
func initEnv(ctx context.Context) (*env, error) {
	if err := cfg.Validate("session"); err != nil {
		return nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	eng := engine.New(
		engine.WithResponder(buildResponder()),
		engine.WithStrictCompliance(cfg.Compliance.Strict),
		engine.WithReportVersion(cfg.Report.Version),
	)

	return &env{Store: st, Engine: eng}, nil
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// buildResponder picks the compliance responder: the live Anthropic
// responder when a key is configured, the deterministic stub otherwise or
// when forced by config.
func buildResponder() compliance.Responder {
	if cfg.Compliance.Stub || cfg.Anthropic.Key == "" {
		zap.L().Info("using stub compliance responder")
		return &compliance.StubResponder{}
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return compliance.NewAnthropicResponder(
		client,
		cfg.Anthropic.Model,
		int64(cfg.Anthropic.MaxTokens),
		cfg.Compliance.RatePerMin,
	)
}
