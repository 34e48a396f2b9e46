package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves a fixed set of establishments.
func fakeAPI(t *testing.T, known map[uuid.UUID]string) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/establishments", func(w http.ResponseWriter, r *http.Request) {
		out := make([]map[string]any, 0, len(known))
		for id, name := range known {
			out = append(out, map[string]any{"id": id, "name": name, "city": "Fresno", "state": "CA", "averageEmployees": 10})
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("GET /api/v1/establishments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		name, ok := known[id]
		if err != nil || !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "name": name, "city": "Fresno", "state": "CA"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, api, state string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-api", api, "-token", "tok", "-state", state}, args...)
	err := run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLI_SelectPersistsAcrossRuns(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	api := fakeAPI(t, map[uuid.UUID]string{id: "Acme Fabrication"})
	state := filepath.Join(t.TempDir(), "state.db")

	_, err := runCLI(t, api, state, "select", id.String())
	require.NoError(t, err)

	out, err := runCLI(t, api, state, "list")
	require.NoError(t, err)
	assert.Regexp(t, `\*\s+`+id.String()+`\s+Acme Fabrication`, out)

	out, err = runCLI(t, api, state, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Establishment: Acme Fabrication")
}

func TestCLI_YearPersists(t *testing.T) {
	t.Parallel()

	api := fakeAPI(t, nil)
	state := filepath.Join(t.TempDir(), "state.db")

	_, err := runCLI(t, api, state, "year", "2026")
	require.NoError(t, err)

	out, err := runCLI(t, api, state, "year")
	require.NoError(t, err)
	assert.Equal(t, "2026", strings.TrimSpace(out))

	_, err = runCLI(t, api, state, "year", "0")
	assert.Error(t, err)
}

func TestCLI_StatusReportsStaleSelection(t *testing.T) {
	t.Parallel()

	api := fakeAPI(t, nil)
	state := filepath.Join(t.TempDir(), "state.db")
	gone := uuid.New()

	_, err := runCLI(t, api, state, "select", gone.String())
	require.NoError(t, err)

	out, err := runCLI(t, api, state, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, gone.String())
}

func TestCLI_UnselectAndErrors(t *testing.T) {
	t.Parallel()

	api := fakeAPI(t, nil)
	state := filepath.Join(t.TempDir(), "state.db")

	_, err := runCLI(t, api, state, "select", uuid.NewString())
	require.NoError(t, err)
	_, err = runCLI(t, api, state, "unselect")
	require.NoError(t, err)

	out, err := runCLI(t, api, state, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "none selected")

	_, err = runCLI(t, api, state, "select", "not-a-uuid")
	assert.Error(t, err)

	_, err = runCLI(t, api, state, "frobnicate")
	assert.Error(t, err)

	out, err = runCLI(t, api, state, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No establishments.")
}
