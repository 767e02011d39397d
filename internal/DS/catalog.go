package DS

import (
	"github.com/petar/GoLLRB/llrb"
)

type catalogEntry[T any] struct {
	name  string
	value T
}

func (e catalogEntry[T]) Less(than llrb.Item) bool {
	return e.name < than.(catalogEntry[T]).name
}

// Catalog is a name-ordered index of schema objects.
type Catalog[T any] struct {
	tree *llrb.LLRB
}

func NewCatalog[T any]() *Catalog[T] {
	return &Catalog[T]{tree: llrb.New()}
}

func (c *Catalog[T]) Get(name string) (T, bool) {
	item := c.tree.Get(catalogEntry[T]{name: name})
	if item == nil {
		var zero T
		return zero, false
	}
	return item.(catalogEntry[T]).value, true
}

func (c *Catalog[T]) Has(name string) bool {
	return c.tree.Has(catalogEntry[T]{name: name})
}

// Put inserts or replaces the entry for name.
func (c *Catalog[T]) Put(name string, value T) {
	c.tree.ReplaceOrInsert(catalogEntry[T]{name: name, value: value})
}

// Delete removes name and reports whether it was present.
func (c *Catalog[T]) Delete(name string) bool {
	return c.tree.Delete(catalogEntry[T]{name: name}) != nil
}

func (c *Catalog[T]) Len() int {
	return c.tree.Len()
}

// Names returns all names in ascending order.
func (c *Catalog[T]) Names() []string {
	names := make([]string, 0, c.tree.Len())
	c.tree.AscendGreaterOrEqual(catalogEntry[T]{}, func(i llrb.Item) bool {
		names = append(names, i.(catalogEntry[T]).name)
		return true
	})
	return names
}
