package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/config"
)

// Headers the draft API reads or sets.
const (
	HeaderRequestID          = "X-Request-ID"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

var (
	defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"}

	apiMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}

	// Sent by the entry form.
	apiRequestHeaders = []string{"Accept", "Content-Type", "Origin", HeaderRequestID}

	// Read by the entry form: the preview filename, the request id and the
	// submit throttle state.
	apiResponseHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
		HeaderRequestID, HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRetryAfter,
	}
)

// CORSMiddleware allows the entry form's origins to call the draft API.
// Configured headers are added to the API's own request headers.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = apiMethods
	}

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  methods,
		AllowHeaders:  mergeHeaders(apiRequestHeaders, cfg.AllowedHeaders),
		ExposeHeaders: apiResponseHeaders,
		MaxAge:        12 * time.Hour,
	})
}

func mergeHeaders(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, h := range append(append([]string{}, base...), extra...) {
		key := http.CanonicalHeaderKey(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}
