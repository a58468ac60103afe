package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache remembers the most recent event IDs that produced an order, so a
// redelivered event is not applied twice.
type Cache struct {
	size int
	lru  *lru.Cache[string, struct{}]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

func (c *Cache) Seen(id string) bool {
	return c.lru.Contains(id)
}

// Mark records id and reports whether it was already present. The check and
// the insert happen as one step.
func (c *Cache) Mark(id string) (alreadySeen bool) {
	alreadySeen, _ = c.lru.ContainsOrAdd(id, struct{}{})
	return alreadySeen
}

// Forget drops id so a later redelivery is applied again.
func (c *Cache) Forget(id string) {
	c.lru.Remove(id)
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Size() int {
	return c.size
}
