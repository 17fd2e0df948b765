package service

import (
	"context"
	"log/slog"

	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
)

// FilmService 电影服务：每次调用对应一个工作单元
type FilmService struct {
	repos *repository.Repositories
	cache *ReadCache
	log   *slog.Logger
}

// NewFilmService 创建电影服务
func NewFilmService(repos *repository.Repositories, cache *ReadCache, log *slog.Logger) *FilmService {
	return &FilmService{repos: repos, cache: cache, log: log}
}

// Create 创建电影并关联（或创建）制片人、演员、类型
func (s *FilmService) Create(ctx context.Context, req *model.FilmCreateRequest) (model.FilmPublicFull, error) {
	var created *model.Film
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		film := req.Film.ToFilm()
		if err := LinkAll(ctx, tx, req.Links(), film); err != nil {
			return err
		}
		if err := tx.Film.Save(ctx, film); err != nil {
			return err
		}
		var err error
		created, err = tx.Film.GetByID(ctx, film.ID)
		return err
	})
	if err != nil {
		return model.FilmPublicFull{}, err
	}
	s.cache.Invalidate()

	s.log.Info("电影已创建",
		"film_id", created.ID,
		"name", created.Name,
		"producers", len(created.Producers),
		"actors", len(created.Actors),
		"genres", len(created.Genres),
	)
	return model.NewFilmPublicFull(created), nil
}

// Link 为已存在的电影追加关联，已关联的同名实体会被跳过
func (s *FilmService) Link(ctx context.Context, id uint, req model.LinkRequest) (model.FilmPublicFull, error) {
	var linked *model.Film
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		film, err := tx.Film.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := LinkAll(ctx, tx, req, film); err != nil {
			return err
		}
		if err := tx.Film.Save(ctx, film); err != nil {
			return err
		}
		linked, err = tx.Film.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return model.FilmPublicFull{}, err
	}
	s.cache.Invalidate()

	s.log.Info("电影关联已更新", "film_id", id)
	return model.NewFilmPublicFull(linked), nil
}

// Get 获取电影详情
func (s *FilmService) Get(ctx context.Context, id uint) (model.FilmPublicFull, error) {
	return s.cache.Film(id, func() (model.FilmPublicFull, error) {
		film, err := s.repos.Film.GetByID(ctx, id)
		if err != nil {
			return model.FilmPublicFull{}, err
		}
		return model.NewFilmPublicFull(film), nil
	})
}

// List 分页获取电影，空页返回 ErrNotFound
func (s *FilmService) List(ctx context.Context, offset, limit int) ([]model.FilmPublic, error) {
	return s.cache.Page(offset, limit, func() ([]model.FilmPublic, error) {
		films, err := s.repos.Film.List(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		return model.NewFilmPublicList(films), nil
	})
}

// Update 部分更新电影字段
func (s *FilmService) Update(ctx context.Context, id uint, upd *model.FilmUpdate) (model.FilmPublicFull, error) {
	fields := upd.Fields()
	var updated *model.Film
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		updated, err = tx.Film.UpdateFields(ctx, id, fields)
		return err
	})
	if err != nil {
		return model.FilmPublicFull{}, err
	}
	if len(fields) > 0 {
		s.cache.Invalidate()
		s.log.Info("电影已更新", "film_id", id, "fields", len(fields))
	}
	return model.NewFilmPublicFull(updated), nil
}

// Delete 删除电影及其关联行
func (s *FilmService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		return tx.Film.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate()
	s.log.Info("电影已删除", "film_id", id)
	return nil
}
