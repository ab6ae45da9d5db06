package middleware

import (
	"net/http"

	"github.com/roadmaphq/roadmap/internal/config"
	"github.com/roadmaphq/roadmap/internal/ctxkeys"
)

// Config injects a sanitized copy of the app config into the request
// context so handlers never see secrets.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
