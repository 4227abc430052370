package routing

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Rewriter wraps an http.Handler with host-based tenant routing. Requests
// classified as tenant traffic have their path rewritten in place before the
// inner handler (the gin engine) sees them; the browser URL and Host header
// are unchanged and no redirect is ever issued.
//
// The rewriter keeps no mutable state and is safe for concurrent use.
func Rewriter(cfg DomainConfig, log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Excluded(r.URL.Path, cfg) {
			next.ServeHTTP(w, r)
			return
		}

		d := Classify(r.Host, r.URL.Path, cfg)
		if d.Rewrite {
			log.Debug().
				Str("host", r.Host).
				Str("from", r.URL.Path).
				Str("to", d.Path).
				Msg("tenant rewrite")

			r.URL.Path = d.Path
			r.URL.RawPath = ""
		}

		next.ServeHTTP(w, r)
	})
}
