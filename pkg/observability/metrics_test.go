package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/algorithms"
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/observability"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/scheduler"
	"github.com/debeat/essentia/pkg/streaming"
)

func TestMetrics_RecordsRun(t *testing.T) {
	metrics := observability.NewMetrics()

	p := pool.New()
	gen := algorithms.NewRealVectorInput(1, 2, 3)
	sink := streaming.NewPoolStorage(p, "audio.samples", domain.TypeReal)
	in, err := sink.Input("data")
	require.NoError(t, err)
	out, err := gen.Output("data")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(out, in))

	n := scheduler.New(scheduler.WithHooks(metrics.Hooks()))
	n.Add(gen, sink)
	require.NoError(t, n.Run(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "essentia_process_steps_total")
	assert.Contains(t, body, `algorithm="VectorInput"`)
	assert.Contains(t, body, `status="finished"`)
	assert.Contains(t, body, "essentia_process_duration_seconds")
}
