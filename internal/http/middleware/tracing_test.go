package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

type recordingExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *recordingExporter) ExportSpan(s *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, s)
}

func (e *recordingExporter) find(name string) *trace.SpanData {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.spans {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func recordSpans(t *testing.T) *recordingExporter {
	exporter := &recordingExporter{}
	trace.RegisterExporter(exporter)
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	t.Cleanup(func() {
		trace.UnregisterExporter(exporter)
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(1e-4)})
	})
	return exporter
}

func TestTracingMiddleware(t *testing.T) {
	exporter := recordSpans(t)

	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, trace.FromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/editor.preview?session_id=abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	span := exporter.find("GET /api/editor.preview")
	require.NotNil(t, span)
	assert.Equal(t, "abc", span.Attributes["editor.session_id"])
	assert.Equal(t, "req-1", span.Attributes["http.request_id"])
	assert.Equal(t, int64(http.StatusOK), span.Attributes["http.status_code"])
}

func TestTracingMiddleware_WithErrorStatus(t *testing.T) {
	exporter := recordSpans(t)

	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/editor.close", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	span := exporter.find("POST /api/editor.close")
	require.NotNil(t, span)
	assert.Equal(t, int64(http.StatusNotFound), span.Attributes["http.status_code"])
	assert.NotEqual(t, int32(trace.StatusCodeOK), span.Status.Code)
	_, hasSession := span.Attributes["editor.session_id"]
	assert.False(t, hasSession)
}
