package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
)

func TestDefaults(t *testing.T) {
	timeouts.Reset()

	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping: got %v", timeouts.Ping())
	}
	if timeouts.Short() != timeouts.DefaultShort {
		t.Errorf("Short: got %v", timeouts.Short())
	}
	if timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("Medium: got %v", timeouts.Medium())
	}
	if timeouts.Long() != timeouts.DefaultLong {
		t.Errorf("Long: got %v", timeouts.Long())
	}
}

func TestConfigure_ZeroValuesIgnored(t *testing.T) {
	timeouts.Reset()
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Medium: 3 * time.Second})

	if timeouts.Medium() != 3*time.Second {
		t.Errorf("Medium: got %v, want 3s", timeouts.Medium())
	}
	// Unset fields keep their previous values.
	if timeouts.Short() != timeouts.DefaultShort {
		t.Errorf("Short should be unchanged, got %v", timeouts.Short())
	}
	if timeouts.Long() != timeouts.DefaultLong {
		t.Errorf("Long should be unchanged, got %v", timeouts.Long())
	}
}

func TestReset(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: time.Minute, Long: time.Hour})
	timeouts.Reset()

	if timeouts.Ping() != timeouts.DefaultPing || timeouts.Long() != timeouts.DefaultLong {
		t.Errorf("Reset did not restore defaults: ping=%v long=%v", timeouts.Ping(), timeouts.Long())
	}
}
