package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinworks/qop/internal/database"
	"github.com/spinworks/qop/internal/modules/spectra"
	"github.com/spinworks/qop/pkg/operators"
)

func setupTestHandler(t *testing.T) *Handler {
	t.Helper()

	logger := zerolog.New(nil).Level(zerolog.Disabled)

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "spectra.db"),
		Profile: database.ProfileCache,
		Name:    "spectra",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := spectra.NewRepository(db, logger)
	require.NoError(t, repo.InitSchema())

	return NewHandler(spectra.NewService(repo, 8, operators.DefaultTolerance, logger), logger)
}

func computeRequest(t *testing.T, handler *Handler, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/spectra/compute", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()
	handler.HandleCompute(w, req)
	return w
}

func pauliZ(coeff float64, site int) map[string]interface{} {
	return map[string]interface{}{
		"alphabet": "pauli",
		"terms": []map[string]interface{}{
			{
				"coefficient": map[string]interface{}{"real": coeff},
				"factors":     []map[string]interface{}{{"site": site, "action": "Z"}},
			},
		},
	}
}

func TestHandleCompute(t *testing.T) {
	handler := setupTestHandler(t)

	w := computeRequest(t, handler, map[string]interface{}{
		"operator": pauliZ(1, 0),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["dimension"])
	assert.InDelta(t, -1, data["ground"].(float64), 1e-9)

	metadata := response["metadata"].(map[string]interface{})
	assert.Equal(t, false, metadata["cached"])
}

func TestHandleComputeSecondCallIsCached(t *testing.T) {
	handler := setupTestHandler(t)

	body := map[string]interface{}{"operator": pauliZ(0.5, 0)}
	computeRequest(t, handler, body)
	w := computeRequest(t, handler, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	metadata := response["metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata["cached"])
}

func TestHandleComputeRejectsNonHermitian(t *testing.T) {
	handler := setupTestHandler(t)

	w := computeRequest(t, handler, map[string]interface{}{
		"operator": map[string]interface{}{
			"alphabet": "pauli",
			"terms": []map[string]interface{}{
				{
					"coefficient": map[string]interface{}{"imag": 1},
					"factors":     []map[string]interface{}{{"site": 0, "action": "X"}},
				},
			},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleComputeRejectsOversizedBudget(t *testing.T) {
	handler := setupTestHandler(t)

	w := computeRequest(t, handler, map[string]interface{}{
		"operator": pauliZ(1, 0),
		"n_qubits": 20,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStats(t *testing.T) {
	handler := setupTestHandler(t)

	computeRequest(t, handler, map[string]interface{}{"operator": pauliZ(1, 0)})

	req := httptest.NewRequest("GET", "/api/spectra/stats", nil)
	w := httptest.NewRecorder()
	handler.HandleStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["cached_spectra"])
}
