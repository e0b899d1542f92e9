package cache

import (
	"sync"
	"testing"
)

func TestVariantCacheSetGet(t *testing.T) {
	c := NewVariantCache()

	if _, ok := c.Get("ext-1"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set("ext-1", 9001)
	id, ok := c.Get("ext-1")
	if !ok || id != 9001 {
		t.Fatalf("get want 9001 got %d ok=%v", id, ok)
	}

	// 同步覆盖同一 externalId
	c.Set("ext-1", 9002)
	id, _ = c.Get("ext-1")
	if id != 9002 {
		t.Fatalf("overwrite want 9002 got %d", id)
	}

	c.Set("", 9003)
	c.Set("ext-2", 0)
	if c.Len() != 1 {
		t.Fatalf("invalid entries should be ignored, len want 1 got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len after clear want 0 got %d", c.Len())
	}
}

func TestVariantCacheConcurrentAccess(t *testing.T) {
	c := NewVariantCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 100; j++ {
				c.Set("ext-shared", n*1000+j+1)
				c.Get("ext-shared")
			}
		}(int64(i))
	}
	wg.Wait()
	if _, ok := c.Get("ext-shared"); !ok {
		t.Fatal("entry missing after concurrent writes")
	}
}
