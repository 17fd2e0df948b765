package testsupport

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/user/films/internal/logging"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
	"github.com/user/films/internal/service"
	"gorm.io/gorm"
)

// OpenDB 在临时目录创建已迁移的 SQLite 数据库
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "films.db")
	db, err := repository.InitDB("sqlite", path, nil)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewServices 基于新数据库组装仓库与服务
func NewServices(t *testing.T) (*service.Services, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories(OpenDB(t))
	cache, err := service.NewReadCache(time.Minute, 64)
	if err != nil {
		t.Fatalf("NewReadCache: %v", err)
	}
	return service.NewServices(repos, cache, logging.Discard()), repos
}

// Names 把名称转为创建载荷
func Names(names ...string) []model.EntitySpec {
	out := make([]model.EntitySpec, 0, len(names))
	for _, n := range names {
		out = append(out, model.EntitySpec{Name: n})
	}
	return out
}

// FilmRequest 构造电影创建请求，nil 列表视为空
func FilmRequest(name string, producers, actors, genres []model.EntitySpec) *model.FilmCreateRequest {
	rating := 8.5
	duration := 150
	if producers == nil {
		producers = []model.EntitySpec{}
	}
	if actors == nil {
		actors = []model.EntitySpec{}
	}
	if genres == nil {
		genres = []model.EntitySpec{}
	}
	return &model.FilmCreateRequest{
		Film: &model.FilmCreate{
			Name:        name,
			ReleaseDate: "2024-07-15",
			Duration:    &duration,
			Rating:      &rating,
		},
		Producers: producers,
		Actors:    actors,
		Genres:    genres,
	}
}

// CountRows 统计表行数
func CountRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
