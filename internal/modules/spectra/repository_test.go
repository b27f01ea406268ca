package spectra

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinworks/qop/internal/database"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "spectra.db"),
		Profile: database.ProfileCache,
		Name:    "spectra",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db, zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, repo.InitSchema())
	return repo
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, ok, err := repo.Get("no-such-fingerprint")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryPutGetRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	eigenvalues := []float64{-1.5, 0, 0, 1.5}
	require.NoError(t, repo.Put("fp-1", 2, 3, eigenvalues))

	got, ok, err := repo.Get("fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, eigenvalues, got)
}

func TestRepositoryPutReplacesExisting(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Put("fp-1", 1, 1, []float64{-1, 1}))
	require.NoError(t, repo.Put("fp-1", 1, 1, []float64{-2, 2}))

	got, ok, err := repo.Get("fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{-2, 2}, got)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepositoryPruneOlderThan(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Put("fresh", 1, 1, []float64{-1, 1}))

	// Nothing is older than an hour yet
	deleted, err := repo.PruneOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// created_at has one-second resolution, so a negative window is the
	// reliable way to expire rows written just now
	deleted, err = repo.PruneOlderThan(-2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCleanupJob(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Put("fp-1", 1, 1, []float64{-1, 1}))

	job := NewCleanupJob(repo, -2*time.Second, zerolog.New(nil).Level(zerolog.Disabled))
	assert.Equal(t, "spectra_cleanup", job.Name())

	require.NoError(t, job.Run())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
