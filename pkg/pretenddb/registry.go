package pretenddb

import (
	"sort"
	"sync"
)

type registryEntry struct {
	server *Server
	mu     sync.Mutex
}

// Registry hands out one Server per address, so that every connection to
// the same host:port sees the same databases. Each Server comes with a
// mutex that callers hold while executing against it.
type Registry struct {
	mu      sync.Mutex
	opts    Options
	entries map[string]*registryEntry
}

// NewRegistry creates an empty registry. Servers it creates use opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, entries: make(map[string]*registryEntry)}
}

func (r *Registry) entry(addr string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[addr]
	if !ok {
		e = &registryEntry{server: NewServer(r.opts)}
		r.entries[addr] = e
	}
	return e
}

// Server returns the server for addr, creating it on first use.
func (r *Registry) Server(addr string) *Server {
	return r.entry(addr).server
}

// Lock returns the mutex guarding the server for addr.
func (r *Registry) Lock(addr string) *sync.Mutex {
	return &r.entry(addr).mu
}

// Remove forgets the server for addr. Later lookups start from an empty
// server.
func (r *Registry) Remove(addr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[addr]
	delete(r.entries, addr)
	return ok
}

// Addrs returns the registered addresses sorted.
func (r *Registry) Addrs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := make([]string, 0, len(r.entries))
	for addr := range r.entries {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
