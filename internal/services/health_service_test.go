package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts"
)

func TestHealthService(t *testing.T) {
	ctx := context.Background()

	t.Run("ready with statistics service", func(t *testing.T) {
		stats, _ := newTestService(t, WithWorkers(3))
		hs := NewHealthService(stats, nil)

		health := hs.HealthCheck(ctx)
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, contracts.Version, health.Version)

		cache, ok := health.Services["parse_cache"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 3, cache["workers"])
		assert.Equal(t, 0, cache["entries"])
	})

	t.Run("not ready without statistics service", func(t *testing.T) {
		hs := NewHealthService(nil, nil)

		ready := hs.ReadinessCheck(ctx)
		assert.Equal(t, "not_ready", ready.Status)
		assert.Equal(t, "not_ready", hs.HealthCheck(ctx).Status)
		assert.NotContains(t, ready.Services, "parse_cache")
	})

	t.Run("liveness reports runtime", func(t *testing.T) {
		hs := NewHealthService(nil, nil)

		live := hs.LivenessCheck(ctx)
		assert.Equal(t, "alive", live.Status)
		assert.Contains(t, live.Runtime, "go_version")
		assert.Contains(t, live.Runtime, "goroutines")
	})

	t.Run("version", func(t *testing.T) {
		hs := NewHealthService(nil, nil)
		assert.Equal(t, contracts.Version, hs.Version().Version)
	})
}
