package spectra

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spinworks/qop/pkg/linalg"
	"github.com/spinworks/qop/pkg/operators"
)

// Service computes operator spectra with database-backed caching.
type Service struct {
	repo      *Repository
	maxQubits int
	tolerance float64
	log       zerolog.Logger
}

// NewService creates a new spectra service.
// maxQubits caps the dimension of materialized matrices (2^maxQubits);
// tolerance prunes near-zero terms before an operator is fingerprinted, so
// numerically equal requests share a cache entry.
func NewService(repo *Repository, maxQubits int, tolerance float64, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		maxQubits: maxQubits,
		tolerance: tolerance,
		log:       log.With().Str("service", "spectra").Logger(),
	}
}

// Fingerprint derives the cache key for an operator at a given qubit count.
// Operator rendering is deterministic (terms sorted by length then key), so
// equal operators always map to the same fingerprint.
func Fingerprint(op *operators.QubitOperator, nQubits int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d", op.String(), nQubits)
	return hex.EncodeToString(h.Sum(nil))
}

// Spectrum returns the sorted eigenvalues of a Hermitian operator on nQubits
// qubits. The second return value reports whether the result came from cache.
func (s *Service) Spectrum(op *operators.QubitOperator, nQubits int) ([]float64, bool, error) {
	if nQubits > s.maxQubits {
		return nil, false, fmt.Errorf("%w: %d qubits requested, limit is %d",
			operators.ErrInsufficientQubits, nQubits, s.maxQubits)
	}

	op = op.Pruned(s.tolerance)
	fingerprint := Fingerprint(op, nQubits)

	cached, ok, err := s.repo.Get(fingerprint)
	if err != nil {
		// Cache failures degrade to recomputation
		s.log.Warn().Err(err).Msg("Spectrum cache lookup failed")
	} else if ok {
		return cached, true, nil
	}

	eigenvalues, err := linalg.Spectrum(op, nQubits)
	if err != nil {
		return nil, false, err
	}

	if err := s.repo.Put(fingerprint, nQubits, op.NumTerms(), eigenvalues); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache spectrum")
	}

	s.log.Info().
		Int("n_qubits", nQubits).
		Int("num_terms", op.NumTerms()).
		Msg("Spectrum computed")

	return eigenvalues, false, nil
}

// CachedCount returns the number of spectra currently in the cache.
func (s *Service) CachedCount() (int, error) {
	return s.repo.Count()
}
