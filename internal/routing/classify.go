package routing

import "strings"

// DomainConfig holds the hostnames the classifier branches on. All fields are
// compared case-insensitively against the lowercased request hostname.
type DomainConfig struct {
	// RootDomain is the platform's own hostname (marketing site + dashboard).
	RootDomain string
	// WildcardDomain is the hosting provider's wildcard base domain, e.g.
	// "fly.dev". The deployment's own alias under it (the first label of
	// RootDomain) is never treated as a tenant.
	WildcardDomain string
	// AppLabel is the reserved subdomain for the authenticated app ("app").
	AppLabel string
	// ExcludedPrefixes lists request path prefixes that are never rewritten
	// (static assets, the API surface, the tenant route itself).
	ExcludedPrefixes []string
}

// DefaultExcludedPrefixes covers the paths the rewriter must never touch.
var DefaultExcludedPrefixes = []string{"/api/", "/s/", "/_next/", "/favicon.ico", "/health"}

// Decision is the outcome of classifying one request.
// Rewrite=false means the request passes through untouched.
type Decision struct {
	Rewrite bool
	Path    string
}

// Classify maps a request's Host header and path to a routing decision.
//
// Tenant sites are addressed by subdomain only: "acme.lvh.me" serves the
// project published under slug "acme" via an internal rewrite to "/s/acme".
// Two-label hostnames (bare custom apex domains) always pass through; only
// subdomain-style custom domains are supported.
//
// Classify is a pure function over strings. It never errors: any hostname
// shape it does not recognize degrades to pass-through.
func Classify(host, path string, cfg DomainConfig) Decision {
	hostname := strings.ToLower(host)
	if i := strings.IndexByte(hostname, ':'); i >= 0 {
		hostname = hostname[:i] // strip port
	}
	if hostname == "" {
		return Decision{}
	}

	// 1. The platform's own domain serves the main app.
	if hostname == cfg.RootDomain {
		return Decision{}
	}

	parts := strings.Split(hostname, ".")
	onWildcard := cfg.WildcardDomain != "" && strings.HasSuffix(hostname, "."+cfg.WildcardDomain)

	// 2. On the provider wildcard domain, the deployment's own alias is not
	// a tenant. Without this check the platform hostname would rewrite into
	// itself.
	if onWildcard {
		if root := strings.Split(cfg.RootDomain, "."); len(root) > 0 && parts[0] == root[0] {
			return Decision{}
		}
	}

	// 3. No subdomain present (incl. the wildcard domain itself). A host
	// under the wildcard domain always carries one, even with only two
	// labels ("acme.localhost").
	if len(parts) < 3 && !onWildcard {
		return Decision{}
	}

	subdomain := parts[0]

	// 4. "app" is reserved for the authenticated application.
	if subdomain == cfg.AppLabel {
		return Decision{}
	}

	// 5. Internal rewrite to the tenant route. The bare "/" collapses so the
	// site root lands on "/s/<subdomain>" without a trailing slash.
	rewritten := "/s/" + subdomain
	if path != "/" {
		rewritten += path
	}
	return Decision{Rewrite: true, Path: rewritten}
}

// Excluded reports whether a path is outside routing consideration entirely.
func Excluded(path string, cfg DomainConfig) bool {
	prefixes := cfg.ExcludedPrefixes
	if prefixes == nil {
		prefixes = DefaultExcludedPrefixes
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
