package otel

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

func TestMustInitOtelDisabled(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("otel.enabled", false)

	ctrl := MustInitOtel()
	if ctrl != nil {
		t.Fatal("expected nil controller when tracing is disabled")
	}
	if err := ctrl.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on nil controller: %v", err)
	}

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Errorf("propagator fields %v do not include traceparent", fields)
	}
}
