package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/talkincode/toughshop/internal/domain"
)

// DefaultCacheTTL is how long a full load stays fresh before Refresh is due
const DefaultCacheTTL = 5 * time.Minute

func productLess(a, b *domain.Product) bool {
	return a.ID < b.ID
}

// Cache is a read-through product index ordered by id.
// Values handed out are copies, callers may modify them freely.
type Cache struct {
	mu       sync.RWMutex
	repo     ProductRepository
	tree     *btree.BTreeG[*domain.Product]
	ttl      time.Duration
	loadedAt time.Time
}

// NewCache creates an empty cache in front of repo
func NewCache(repo ProductRepository, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		repo: repo,
		tree: btree.NewG(16, productLess),
		ttl:  ttl,
	}
}

// Repository returns the backing repository
func (c *Cache) Repository() ProductRepository {
	return c.repo
}

// GetByID returns the product from the index, loading it on a miss
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	p, ok := c.tree.Get(&domain.Product{ID: id})
	c.mu.RUnlock()
	if ok {
		cp := *p
		return &cp, nil
	}

	loaded, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stored := *loaded
	c.mu.Lock()
	c.tree.ReplaceOrInsert(&stored)
	c.mu.Unlock()
	return loaded, nil
}

// Refresh reloads the whole catalog and swaps the index
func (c *Cache) Refresh(ctx context.Context) error {
	rows, err := c.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	tree := btree.NewG(16, productLess)
	for _, p := range rows {
		tree.ReplaceOrInsert(p)
	}
	c.mu.Lock()
	c.tree = tree
	c.loadedAt = time.Now()
	c.mu.Unlock()
	zap.L().Debug("catalog cache refreshed", zap.Int("products", len(rows)))
	return nil
}

// RefreshIfStale reloads when the last full load is older than the ttl
func (c *Cache) RefreshIfStale(ctx context.Context) error {
	c.mu.RLock()
	stale := time.Since(c.loadedAt) >= c.ttl
	c.mu.RUnlock()
	if !stale {
		return nil
	}
	return c.Refresh(ctx)
}

// Invalidate drops one product so the next read goes to the repository
func (c *Cache) Invalidate(id int64) {
	c.mu.Lock()
	c.tree.Delete(&domain.Product{ID: id})
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Len()
}
