package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/debeat/essentia/pkg/adapters/http"
	"github.com/debeat/essentia/pkg/adapters/memory"
	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store := memory.New()

	p := pool.New()
	require.NoError(t, pool.Add(p, "lowlevel.energy", domain.Real(0.5)))
	require.NoError(t, pool.Set(p, "metadata.version", "2.1"))
	require.NoError(t, store.Save(context.Background(), "track-1", p))

	return httpadapter.NewHandler(store)
}

func doRequest(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestHandler(t), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListPools(t *testing.T) {
	w := doRequest(newTestHandler(t), http.MethodGet, "/pools")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pools []string `json:"pools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"track-1"}, body.Pools)
}

func TestGetPool(t *testing.T) {
	w := doRequest(newTestHandler(t), http.MethodGet, "/pools/track-1")
	require.Equal(t, http.StatusOK, w.Code)

	var snap poolio.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Descriptors, 2)
	assert.Equal(t, "lowlevel.energy", snap.Descriptors[0].Name)
	assert.Equal(t, "metadata.version", snap.Descriptors[1].Name)
	assert.True(t, snap.Descriptors[1].Single)
}

func TestGetPool_NotFound(t *testing.T) {
	w := doRequest(newTestHandler(t), http.MethodGet, "/pools/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDescriptors(t *testing.T) {
	w := doRequest(newTestHandler(t), http.MethodGet, "/pools/track-1/descriptors")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Descriptors []struct {
			Name   string `json:"name"`
			Type   string `json:"type"`
			Single bool   `json:"single"`
		} `json:"descriptors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Descriptors, 2)
	assert.Equal(t, "real", body.Descriptors[0].Type)
}

func TestDeletePool(t *testing.T) {
	handler := newTestHandler(t)

	w := doRequest(handler, http.MethodDelete, "/pools/track-1")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(handler, http.MethodGet, "/pools/track-1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
