package http

import (
	"testing"

	"quiethours/config"
	"quiethours/shared/constant"
)

func TestShutdownRunsHook(t *testing.T) {
	t.Run("development exits immediately but still runs the hook", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvDevelopment

		stopped := false

		h := &HTTP{Config: cfg, State: ServerStateReady}
		h.OnShutdown = func() { stopped = true }

		h.shutdown()

		if !stopped {
			t.Error("expected the shutdown hook to run")
		}

		if h.State != ServerStateReady {
			t.Errorf("expected state to stay ready in development, got %d", h.State)
		}
	})

	t.Run("walks grace and cleanup periods before the hook", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvProduction
		cfg.Server.Shutdown.GracePeriodSeconds = 0
		cfg.Server.Shutdown.CleanupPeriodSeconds = 0

		stopped := false

		h := &HTTP{Config: cfg, State: ServerStateReady}
		h.OnShutdown = func() {
			stopped = true

			if h.State != ServerStateInCleanupPeriod {
				t.Errorf("expected hook to run after cleanup period, state %d", h.State)
			}
		}

		h.shutdown()

		if !stopped {
			t.Error("expected the shutdown hook to run")
		}
	})

	t.Run("nil hook is fine", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvDevelopment

		h := &HTTP{Config: cfg}

		h.shutdown()
	})
}
