package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() DomainConfig {
	return DomainConfig{
		RootDomain:     "forless-ai.fly.dev",
		WildcardDomain: "fly.dev",
		AppLabel:       "app",
	}
}

func TestClassify_RootDomainPassesThrough(t *testing.T) {
	cfg := testConfig()

	for _, host := range []string{"forless-ai.fly.dev", "forless-ai.fly.dev:8080", "FORLESS-AI.FLY.DEV"} {
		d := Classify(host, "/", cfg)
		assert.False(t, d.Rewrite, "host %q should pass through", host)
	}
}

func TestClassify_TwoLabelHostsPassThrough(t *testing.T) {
	cfg := testConfig()

	// Bare apex domains have no subdomain to route on.
	for _, host := range []string{"lvh.me", "example.com", "fly.dev"} {
		d := Classify(host, "/", cfg)
		assert.False(t, d.Rewrite, "host %q should pass through", host)
	}
}

func TestClassify_SubdomainRewrites(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		host string
		path string
		want string
	}{
		{"mysite.lvh.me", "/", "/s/mysite"},
		{"mysite.lvh.me:3000", "/", "/s/mysite"},
		{"acme.example.com", "/foo/bar", "/s/acme/foo/bar"},
		{"Acme.Example.COM", "/", "/s/acme"},
		{"shop.fly.dev", "/", "/s/shop"},
	}

	for _, tt := range tests {
		d := Classify(tt.host, tt.path, cfg)
		assert.True(t, d.Rewrite, "host %q should rewrite", tt.host)
		assert.Equal(t, tt.want, d.Path)
	}
}

func TestClassify_SingleLabelWildcardDomain(t *testing.T) {
	cfg := DomainConfig{
		RootDomain:     "forless.localhost",
		WildcardDomain: "localhost",
	}

	// Two labels suffice when the wildcard base domain is a single label.
	d := Classify("acme.localhost", "/", cfg)
	assert.True(t, d.Rewrite)
	assert.Equal(t, "/s/acme", d.Path)

	// The wildcard domain itself and the deployment's alias still pass.
	assert.False(t, Classify("localhost", "/", cfg).Rewrite)
	assert.False(t, Classify("forless.localhost", "/", cfg).Rewrite)
}

func TestClassify_WildcardSelfAliasPassesThrough(t *testing.T) {
	cfg := testConfig()

	// The deployment's own alias on the wildcard domain is not a tenant.
	d := Classify("forless-ai.fly.dev", "/dashboard", cfg)
	assert.False(t, d.Rewrite)
}

func TestClassify_AppSubdomainReserved(t *testing.T) {
	cfg := testConfig()

	for _, host := range []string{"app.lvh.me", "app.example.com", "app.forless.example.com"} {
		d := Classify(host, "/dashboard", cfg)
		assert.False(t, d.Rewrite, "host %q should pass through", host)
	}
}

func TestClassify_DeepPathsPreserved(t *testing.T) {
	cfg := testConfig()

	d := Classify("mysite.lvh.me", "/about/team", cfg)
	assert.True(t, d.Rewrite)
	assert.Equal(t, "/s/mysite/about/team", d.Path)
}

func TestClassify_EmptyHost(t *testing.T) {
	d := Classify("", "/", testConfig())
	assert.False(t, d.Rewrite)
}

func TestExcluded(t *testing.T) {
	cfg := testConfig()

	assert.True(t, Excluded("/api/v1/projects", cfg))
	assert.True(t, Excluded("/s/mysite", cfg))
	assert.True(t, Excluded("/favicon.ico", cfg))
	assert.True(t, Excluded("/_next/static/chunk.js", cfg))
	assert.True(t, Excluded("/healthz", cfg))
	assert.False(t, Excluded("/", cfg))
	assert.False(t, Excluded("/about", cfg))
}
