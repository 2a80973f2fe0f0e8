package cartsvc

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughshop/internal/cart"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	a := r.Get("s1")
	b := r.Get("s1")
	require.Same(t, a, b)
	assert.Equal(t, "s1", a.ID())
	assert.Equal(t, 1, r.Len())

	_, ok := r.Lookup("s2")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len(), "lookup must not create")
}

func TestRegistry_EvictIdle(t *testing.T) {
	t.Parallel()

	clock := newClock()
	r := newRegistryWithClock(clock.Now)
	r.Get("old")
	clock.Advance(30 * time.Minute)
	r.Get("fresh")
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 0, r.EvictIdle(0), "zero disables eviction")
	assert.Equal(t, 1, r.EvictIdle(time.Hour))

	_, ok := r.Lookup("old")
	assert.False(t, ok)
	_, ok = r.Lookup("fresh")
	assert.True(t, ok)
}

func TestRegistry_UseKeepsCartAlive(t *testing.T) {
	t.Parallel()

	clock := newClock()
	r := newRegistryWithClock(clock.Now)
	r.Get("s").AddItem(cart.Product{ID: 1, Price: 10})
	clock.Advance(50 * time.Minute)
	r.Get("s").Snapshot()
	clock.Advance(50 * time.Minute)

	assert.Equal(t, 0, r.EvictIdle(time.Hour))
}

// TestSessionCart_ConcurrentAdds checks that concurrent requests of one
// session serialise: no increment is lost.
func TestSessionCart_ConcurrentAdds(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	const workers, perWorker = 16, 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r.Get("shared").AddItem(cart.Product{ID: int64(w%4 + 1), Price: 100})
			}
		}(w)
	}
	wg.Wait()

	v := r.Get("shared").Snapshot()
	assert.Equal(t, workers*perWorker, v.TotalCount)
	assert.Equal(t, int64(workers*perWorker*100), v.TotalPrice)
	assert.Len(t, v.Items, 4)
}

func TestSessionCart_Checkout(t *testing.T) {
	t.Parallel()

	clock := newClock()
	sc := newSessionCart("s", clock.Now)
	_, err := sc.Checkout()
	assert.ErrorIs(t, err, cart.ErrEmptyCart)

	sc.AddItem(cart.Product{ID: 1, Name: "Bowl", Price: 250})
	sc.AddItem(cart.Product{ID: 1, Name: "Bowl", Price: 250})
	receipt, err := sc.Checkout()
	require.NoError(t, err)
	assert.Equal(t, int64(500), receipt.TotalPrice)
	assert.Equal(t, clock.Now(), receipt.CheckedOutAt)
	assert.Equal(t, 0, sc.Snapshot().TotalCount)
}
