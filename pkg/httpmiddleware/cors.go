package httpmiddleware

import (
	"net/http"
	"strings"
)

// CORSConfig configures the CORS middleware. An empty origin list or a "*"
// entry allows every origin, which is the expected setup for a UI served
// from a dev server on another port.
type CORSConfig struct {
	AllowOrigins []string
	AllowHeaders []string
}

// CORS handles cross-origin requests from the embedding UI, including
// preflight.
func CORS(cfg CORSConfig) Middleware {
	allowAll := len(cfg.AllowOrigins) == 0
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(o)] = struct{}{}
	}

	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	if allowHeaders == "" {
		allowHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			_, ok := allowed[strings.ToLower(origin)]
			if !allowAll && !ok {
				next.ServeHTTP(w, r)
				return
			}

			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
