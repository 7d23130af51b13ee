package telemetry

import (
	"context"
	"testing"

	"github.com/avaldezm/newsight/config"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("disabled setup should not fail: %v", err)
	}
	if tel == nil {
		t.Fatalf("expected a telemetry handle even when disabled")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("disabled shutdown should be a no-op: %v", err)
	}
}

func TestShutdownNil(t *testing.T) {
	var tel *Telemetry
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil shutdown should be a no-op: %v", err)
	}
}
