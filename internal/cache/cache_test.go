package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache returned a value")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		c.Set(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Set(4, 4)

	if c.Len() != 3 {
		t.Fatalf("Len = %d after eviction, want 3", c.Len())
	}
	for _, k := range []int{1, 2} {
		if _, ok := c.Get(k); ok {
			t.Errorf("key %d survived eviction", k)
		}
	}
	for _, k := range []int{0, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() int { calls++; return 7 }
	for range 3 {
		if v := c.GetOrCreate("k", create); v != 7 {
			t.Errorf("GetOrCreate = %d", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times", calls)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)
	if !c.Delete("a") || c.Delete("a") {
		t.Error("Delete result wrong")
	}
	c.Set("c", 3)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear", c.Len())
	}
	c.Set("d", 4)
	if v, _ := c.Get("d"); v != 4 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*31 + i) % 100)
				c.GetOrCreate(k, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds the soft limit", c.Len())
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[int, int](1024)
	for i := range 1024 {
		c.Set(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i & 1023)
	}
}
