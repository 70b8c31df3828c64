package observability

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerLevel(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	if err := InitLogger("warn"); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info to be disabled at warn level")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("expected warn to be enabled")
	}

	if err := InitLogger("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
