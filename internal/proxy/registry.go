package proxy

import "fmt"

// Registry maps backend service names to their Upstream.
type Registry map[string]*Upstream

// NewRegistry builds one Upstream per entry of baseURLs, all sharing s.
func NewRegistry(baseURLs map[string]string, s Settings) Registry {
	r := make(Registry, len(baseURLs))
	for name, u := range baseURLs {
		r[name] = NewUpstream(name, u, s)
	}
	return r
}

// MustGet returns the named upstream and panics when it is not
// registered; route wiring calls it once at startup.
func (r Registry) MustGet(name string) *Upstream {
	u, ok := r[name]
	if !ok {
		panic(fmt.Sprintf("proxy: no upstream registered for %q", name))
	}
	return u
}
