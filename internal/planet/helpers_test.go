package planet

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planet-designer/internal/auth"
	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/database"
	"planet-designer/internal/shared/metrics"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

func newTestService(t *testing.T) (*Service, *MemoryCache) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	tokens, err := auth.NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	cache := NewMemoryCache(16)
	svc := NewService(NewRepository(openTestDB(t), logger), cache, tokens, metrics.New(), logger)
	return svc, cache
}

func earthRequest() EvaluateRequest {
	return EvaluateRequest{
		Physical:    physical.Earth(),
		Composition: composition.EarthComposition(),
	}
}
