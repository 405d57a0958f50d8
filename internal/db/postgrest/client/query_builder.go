package client

import (
	"net/url"
)

// buildFilterQuery encodes equality filters in the store's PostgREST
// convention, one field=eq.value clause per filter. Keys are emitted in
// sorted order so generated URLs are deterministic.
func buildFilterQuery(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	values := url.Values{}
	for field, value := range filters {
		values.Set(field, "eq."+value)
	}
	return values.Encode()
}
