package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"colcss/columns"
	"colcss/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := 0; i < 3; i++ {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
		if env.restoreStdLog != nil {
			t.Errorf("Iteration %d: restoreStdLog kept after restore", i)
		}
	}
}

func TestLocalEnv_NilLogger(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}

func TestLocalEnv_NewGenerator(t *testing.T) {
	env := &LocalEnv{Log: zaptest.NewLogger(t)}

	gen, err := env.NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator() without config error = %v", err)
	}
	if got := gen.Resolver().Defaults(); got != columns.DefaultOptions() {
		t.Errorf("Defaults() = %+v, want built-in", got)
	}

	env.Cfg, err = config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg.Generator.Gutter = "16px"
	env.Cfg.Generator.AttributeSelector = true

	gen, err = env.NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	got := gen.Resolver().Defaults()
	if got.Gutter != columns.FixedLength(16, "px") || !got.AttributeSelector {
		t.Errorf("Defaults() = %+v, want configured values", got)
	}

	env.Cfg.Generator.Gutter = "-1px"
	if _, err := env.NewGenerator(); err == nil {
		t.Error("NewGenerator() with negative gutter succeeded")
	}
}
