package spectra

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CleanupJob prunes cached spectra older than the configured TTL.
// Runs on a schedule; entries are re-derivable so eviction is always safe.
type CleanupJob struct {
	repo *Repository
	ttl  time.Duration
	log  zerolog.Logger
}

// NewCleanupJob creates a new spectra cleanup job.
func NewCleanupJob(repo *Repository, ttl time.Duration, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		ttl:  ttl,
		log:  log.With().Str("job", "spectra_cleanup").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *CleanupJob) Name() string {
	return "spectra_cleanup"
}

// Run executes the cleanup job
func (j *CleanupJob) Run() error {
	deleted, err := j.repo.PruneOlderThan(j.ttl)
	if err != nil {
		return fmt.Errorf("failed to prune spectra cache: %w", err)
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Dur("ttl", j.ttl).
			Msg("Spectra cache pruned")
	} else {
		j.log.Debug().Msg("No expired spectra to prune")
	}

	return nil
}
