// Package httpclient provides round-tripper middleware for outbound HTTP
// calls, mirroring the server-side middleware chain style.
package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware wraps an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Wrap applies middlewares to rt so that the first middleware is the
// outermost. A nil rt defaults to http.DefaultTransport.
func Wrap(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}

// RequestID stamps every outbound request with an X-Request-ID, keeping one
// already set by the caller.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req = req.Clone(req.Context())
				req.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(req)
		})
	}
}

// LogRequests logs each outbound call with its status and duration through
// the context logger.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			lg := zctx.From(req.Context())
			if err != nil {
				lg.Warn("Gateway call failed",
					zap.String("method", req.Method),
					zap.String("url", req.URL.String()),
					zap.Duration("duration", time.Since(start)),
					zap.Error(err),
				)
				return nil, err
			}

			lg.Debug("Gateway call",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", time.Since(start)),
			)
			return resp, nil
		})
	}
}
