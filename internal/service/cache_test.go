package service

import (
	"testing"
	"time"

	"github.com/user/films/internal/model"
)

func newTestCache(t *testing.T) *ReadCache {
	t.Helper()
	c, err := NewReadCache(time.Minute, 8)
	if err != nil {
		t.Fatalf("NewReadCache: %v", err)
	}
	return c
}

func TestReadCacheServesFilledEntry(t *testing.T) {
	c := newTestCache(t)
	loads := 0
	load := func() (model.FilmPublicFull, error) {
		loads++
		return model.FilmPublicFull{FilmPublic: model.FilmPublic{ID: 1, Name: "Infinite Journey"}}, nil
	}

	for i := 0; i < 3; i++ {
		film, err := c.Film(1, load)
		if err != nil || film.Name != "Infinite Journey" {
			t.Fatalf("unexpected film %+v %v", film, err)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestReadCacheSkipsFillWhenWriteDuringLoad(t *testing.T) {
	c := newTestCache(t)
	loads := 0
	load := func() ([]model.FilmPublic, error) {
		loads++
		if loads == 1 {
			c.Invalidate()
		}
		return []model.FilmPublic{{ID: 1}}, nil
	}

	if _, err := c.Page(0, 10, load); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if _, err := c.Page(0, 10, load); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if loads != 2 {
		t.Fatalf("stale page was cached, loads=%d", loads)
	}
}

func TestReadCacheUndoesFillRacingInvalidate(t *testing.T) {
	c := newTestCache(t)
	gen := c.generation.Load()

	// 写入恰好落在版本检查与 Set 之间
	c.fill(gen, func() {
		c.Invalidate()
		c.films.Set("film:1", model.FilmPublicFull{FilmPublic: model.FilmPublic{ID: 1}})
	}, func() {
		c.films.Delete("film:1")
	})

	if _, ok := c.films.Get("film:1"); ok {
		t.Fatal("stale entry survived invalidation")
	}
}
