package utils

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// TTLCache 基于 go-cache 的过期缓存
type TTLCache[T any] struct {
	storage *cache.Cache
	ttl     time.Duration
}

// NewTTLCache 创建过期缓存，清理间隔为 ttl 的两倍
func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		storage: cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Get 获取缓存值
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// Set 设置缓存值
func (c *TTLCache[T]) Set(key string, value T) {
	c.storage.Set(key, value, c.ttl)
}

// Delete 删除缓存
func (c *TTLCache[T]) Delete(key string) {
	c.storage.Delete(key)
}

// Clear 清空所有缓存
func (c *TTLCache[T]) Clear() {
	c.storage.Flush()
}

// Len 当前条数（含尚未清理的过期项）
func (c *TTLCache[T]) Len() int {
	return c.storage.ItemCount()
}

// CacheItem 包装实际的数据，增加过期时间
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// LRUCache 有容量上限的 LRU 缓存，条目带过期时间
type LRUCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
}

// NewLRUCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewLRUCache[T any](size int, ttl time.Duration) (*LRUCache[T], error) {
	c, err := lru.New[string, CacheItem[T]](size)
	if err != nil {
		return nil, fmt.Errorf("创建 LRU 缓存失败: %w", err)
	}
	return &LRUCache[T]{
		storage: c,
		ttl:     ttl,
	}, nil
}

// Set 添加或更新
func (c *LRUCache[T]) Set(key string, value T) {
	item := CacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	}
	c.storage.Add(key, item)
}

// Get 获取（带过期检查）
func (c *LRUCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return item.Value, true
}

// Delete 删除
func (c *LRUCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

// Clear 清空
func (c *LRUCache[T]) Clear() {
	c.storage.Purge()
}

// Len 当前长度
func (c *LRUCache[T]) Len() int {
	return c.storage.Len()
}
