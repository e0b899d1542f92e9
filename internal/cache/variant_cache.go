package cache

import "sync"

// VariantCache 变体 ID 映射缓存：externalId -> Printful 变体 ID。
// 条目只增不逐出，进程重启后从空表重建。
type VariantCache struct {
	mu      sync.RWMutex
	entries map[string]int64
}

// NewVariantCache 创建变体缓存
func NewVariantCache() *VariantCache {
	return &VariantCache{entries: make(map[string]int64)}
}

// Get 查询变体 ID
func (c *VariantCache) Get(externalID string) (int64, bool) {
	if externalID == "" {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[externalID]
	return id, ok
}

// Set 写入变体 ID
func (c *VariantCache) Set(externalID string, variantID int64) {
	if externalID == "" || variantID <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[externalID] = variantID
}

// Len 当前条目数
func (c *VariantCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear 清空全部条目
func (c *VariantCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]int64)
}
