package service

import (
	"context"
	"log/slog"

	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
)

// EntityService 某一种类（制片人/演员/类型）的增删改查
type EntityService struct {
	kind  model.Kind
	repos *repository.Repositories
	cache *ReadCache
	log   *slog.Logger
}

// NewEntityService 创建实体服务
func NewEntityService(kind model.Kind, repos *repository.Repositories, cache *ReadCache, log *slog.Logger) *EntityService {
	return &EntityService{kind: kind, repos: repos, cache: cache, log: log}
}

// Create 单独创建实体
func (s *EntityService) Create(ctx context.Context, spec model.EntitySpec) (model.EntityPublic, error) {
	var created model.Related
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		created, err = tx.Entity(s.kind).Create(ctx, spec.Name)
		return err
	})
	if err != nil {
		return model.EntityPublic{}, err
	}
	s.log.Info("实体已创建", "kind", s.kind, "id", created.GetID(), "name", created.GetName())
	return model.EntityPublic{ID: created.GetID(), Name: created.GetName()}, nil
}

// Get 获取实体及其电影
func (s *EntityService) Get(ctx context.Context, id uint) (model.EntityPublicWithFilms, error) {
	e, err := s.repos.Entity(s.kind).GetByID(ctx, id)
	if err != nil {
		return model.EntityPublicWithFilms{}, err
	}
	return model.NewEntityPublicWithFilms(e), nil
}

// List 分页获取，空页返回 ErrNotFound
func (s *EntityService) List(ctx context.Context, offset, limit int) ([]model.EntityPublic, error) {
	items, err := s.repos.Entity(s.kind).List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return model.NewEntityPublicList(items), nil
}

// Update 部分更新（目前只有名称）
func (s *EntityService) Update(ctx context.Context, id uint, upd *model.EntityUpdate) (model.EntityPublicWithFilms, error) {
	fields := upd.Fields()
	var updated model.Related
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		updated, err = tx.Entity(s.kind).UpdateFields(ctx, id, fields)
		return err
	})
	if err != nil {
		return model.EntityPublicWithFilms{}, err
	}
	if len(fields) > 0 {
		// 电影详情中内嵌了实体名称
		s.cache.Invalidate()
		s.log.Info("实体已更新", "kind", s.kind, "id", id)
	}
	return model.NewEntityPublicWithFilms(updated), nil
}

// Delete 删除实体及其与电影的关联
func (s *EntityService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		return tx.Entity(s.kind).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate()
	s.log.Info("实体已删除", "kind", s.kind, "id", id)
	return nil
}

// Services 服务集合
type Services struct {
	Films    *FilmService
	Entities map[model.Kind]*EntityService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, cache *ReadCache, log *slog.Logger) *Services {
	entities := make(map[model.Kind]*EntityService, len(model.Kinds))
	for _, kind := range model.Kinds {
		entities[kind] = NewEntityService(kind, repos, cache, log)
	}
	return &Services{
		Films:    NewFilmService(repos, cache, log),
		Entities: entities,
	}
}
