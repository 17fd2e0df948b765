package service

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/user/films/internal/model"
	"github.com/user/films/internal/utils"
	"golang.org/x/sync/singleflight"
)

// ReadCache 电影详情与分页的读缓存，任何写操作后整体失效
type ReadCache struct {
	films *utils.TTLCache[model.FilmPublicFull]
	pages *utils.LRUCache[[]model.FilmPublic]
	group singleflight.Group
	// 每次失效加一，加载期间发生过写入的结果不回填
	generation atomic.Uint64
}

// NewReadCache 创建读缓存
func NewReadCache(ttl time.Duration, size int) (*ReadCache, error) {
	pages, err := utils.NewLRUCache[[]model.FilmPublic](size, ttl)
	if err != nil {
		return nil, err
	}
	return &ReadCache{
		films: utils.NewTTLCache[model.FilmPublicFull](ttl),
		pages: pages,
	}, nil
}

// Film 读取电影详情，未命中时调用 load，并发的相同请求只加载一次
func (c *ReadCache) Film(id uint, load func() (model.FilmPublicFull, error)) (model.FilmPublicFull, error) {
	key := fmt.Sprintf("film:%d", id)
	if v, ok := c.films.Get(key); ok {
		return v, nil
	}
	gen := c.generation.Load()
	v, err, _ := c.group.Do(fmt.Sprintf("%s@%d", key, gen), func() (interface{}, error) {
		film, err := load()
		if err != nil {
			return nil, err
		}
		c.fill(gen, func() { c.films.Set(key, film) }, func() { c.films.Delete(key) })
		return film, nil
	})
	if err != nil {
		return model.FilmPublicFull{}, err
	}
	return v.(model.FilmPublicFull), nil
}

// Page 读取电影分页
func (c *ReadCache) Page(offset, limit int, load func() ([]model.FilmPublic, error)) ([]model.FilmPublic, error) {
	key := fmt.Sprintf("films:%d:%d", offset, limit)
	if v, ok := c.pages.Get(key); ok {
		return v, nil
	}
	gen := c.generation.Load()
	v, err, _ := c.group.Do(fmt.Sprintf("%s@%d", key, gen), func() (interface{}, error) {
		page, err := load()
		if err != nil {
			return nil, err
		}
		c.fill(gen, func() { c.pages.Set(key, page) }, func() { c.pages.Delete(key) })
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.FilmPublic), nil
}

// fill 只在加载期间没有写入时回填，Set 之后再比对一次，期间有写入就撤回
func (c *ReadCache) fill(gen uint64, set, undo func()) {
	if c.generation.Load() != gen {
		return
	}
	set()
	if c.generation.Load() != gen {
		undo()
	}
}

// Invalidate 清空全部缓存
func (c *ReadCache) Invalidate() {
	c.generation.Add(1)
	c.films.Clear()
	c.pages.Clear()
}
