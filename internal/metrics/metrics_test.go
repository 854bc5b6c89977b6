// ABOUTME: Tests for collector registration.
// ABOUTME: Ensures independent registries and gatherable families.
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewIsIndependent(t *testing.T) {
	a := New()
	b := New()

	a.GraphQLErrors.WithLabelValues("NOT_FOUND").Inc()

	if got := testutil.ToFloat64(a.GraphQLErrors.WithLabelValues("NOT_FOUND")); got != 1 {
		t.Errorf("a errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.GraphQLErrors.WithLabelValues("NOT_FOUND")); got != 0 {
		t.Errorf("b errors = %v, want 0", got)
	}
}

func TestRegistryGathers(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("/graphql", "POST", "200").Inc()
	m.CacheHits.WithLabelValues("memory").Inc()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	want := map[string]bool{
		"fittrack_http_requests_total": false,
		"fittrack_cache_hits_total":    false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("family %s not gathered", name)
		}
	}
}
