package catalog

import "sync/atomic"

// Holder publishes the current catalog. Callers take one snapshot per request
// with Current and use it throughout.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a holder publishing c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the published catalog.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap publishes c and returns the catalog it replaced.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}
