package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps requests in an OpenCensus span named after the RPC
// path, with the editor session attached when the request names one.
func TracingMiddleware(next http.Handler) http.Handler {
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			)
			if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
				span.AddAttributes(trace.StringAttribute("editor.session_id", sessionID))
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}

		next.ServeHTTP(&statusRecorder{ResponseWriter: w, r: r}, r)
	})

	return &ochttp.Handler{
		Handler: annotated,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// statusRecorder marks the request span as failed for 4xx and 5xx responses
type statusRecorder struct {
	http.ResponseWriter
	r *http.Request
}

func (s *statusRecorder) WriteHeader(code int) {
	if span := trace.FromContext(s.r.Context()); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}
	s.ResponseWriter.WriteHeader(code)
}
