// Package spectra provides cached eigenvalue computation for qubit operators.
//
// Spectra are expensive to compute (dense diagonalization scales as 8^n in the
// qubit count) and fully re-derivable, so results live in a cache-profile
// SQLite database keyed by a fingerprint of the operator.
package spectra

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spinworks/qop/internal/database"
)

// Repository handles database operations for cached spectra.
// Database: spectra.db (spectra table)
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new spectra repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "spectra_repository").Logger(),
	}
}

// InitSchema creates the spectra table if it does not exist.
func (r *Repository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS spectra (
			uuid        TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL UNIQUE,
			n_qubits    INTEGER NOT NULL,
			num_terms   INTEGER NOT NULL,
			eigenvalues BLOB NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create spectra table: %w", err)
	}
	return nil
}

// Get retrieves a cached spectrum by fingerprint.
// The second return value is false when no entry exists.
func (r *Repository) Get(fingerprint string) ([]float64, bool, error) {
	var blob []byte
	err := r.db.QueryRow(`
		SELECT eigenvalues FROM spectra WHERE fingerprint = ?
	`, fingerprint).Scan(&blob)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query spectrum: %w", err)
	}

	var eigenvalues []float64
	if err := msgpack.Unmarshal(blob, &eigenvalues); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached spectrum: %w", err)
	}

	r.log.Debug().
		Str("fingerprint", fingerprint).
		Int("count", len(eigenvalues)).
		Msg("Spectrum cache hit")

	return eigenvalues, true, nil
}

// Put stores a computed spectrum. If an entry with the same fingerprint
// already exists it is replaced.
func (r *Repository) Put(fingerprint string, nQubits, numTerms int, eigenvalues []float64) error {
	blob, err := msgpack.Marshal(eigenvalues)
	if err != nil {
		return fmt.Errorf("failed to encode spectrum: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT OR REPLACE INTO spectra (uuid, fingerprint, n_qubits, num_terms, eigenvalues)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), fingerprint, nQubits, numTerms, blob)

	if err != nil {
		return fmt.Errorf("failed to store spectrum: %w", err)
	}

	r.log.Debug().
		Str("fingerprint", fingerprint).
		Int("n_qubits", nQubits).
		Msg("Spectrum cached")

	return nil
}

// PruneOlderThan deletes cached spectra older than the given age.
// Returns the number of rows deleted.
func (r *Repository) PruneOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)

	result, err := r.db.Exec(`
		DELETE FROM spectra WHERE created_at < ?
	`, cutoff.Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to prune spectra: %w", err)
	}

	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Count returns the number of cached spectra.
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM spectra`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count spectra: %w", err)
	}
	return count, nil
}
