package middleware

import (
	"net/http"
	"strings"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// Tracing starts a server span per request, named after the RPC method
// ("builder.addBlock" for /api/builder.addBlock), and marks 4xx/5xx responses as errors.
func Tracing(next http.Handler) http.Handler {
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
			)
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}
		next.ServeHTTP(&statusRecorder{ResponseWriter: w, r: r}, r)
	})

	return &ochttp.Handler{
		Handler:          annotated,
		FormatSpanName:   spanName,
		IsPublicEndpoint: true,
	}
}

func spanName(r *http.Request) string {
	if method := strings.TrimPrefix(r.URL.Path, "/api/"); method != r.URL.Path && method != "" {
		return method
	}
	return r.Method + " " + r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	r *http.Request
}

func (sr *statusRecorder) WriteHeader(code int) {
	if span := trace.FromContext(sr.r.Context()); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}
	sr.ResponseWriter.WriteHeader(code)
}
