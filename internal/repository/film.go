package repository

import (
	"context"
	"errors"

	"github.com/user/films/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilmRepository 电影仓库
type FilmRepository struct {
	db       *gorm.DB
	entities map[model.Kind]EntityStore
}

// NewFilmRepository 创建电影仓库
func NewFilmRepository(db *gorm.DB, entities map[model.Kind]EntityStore) *FilmRepository {
	return &FilmRepository{db: db, entities: entities}
}

// GetByID 根据 ID 查找电影，预加载全部关联
func (r *FilmRepository) GetByID(ctx context.Context, id uint) (*model.Film, error) {
	var film model.Film
	q := r.db.WithContext(ctx)
	for _, kind := range model.Kinds {
		q = q.Preload(kind.Field(), orderByID)
	}
	err := q.First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Film not Found")
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// List 分页获取电影，结果为空时返回 ErrNotFound
func (r *FilmRepository) List(ctx context.Context, offset, limit int) ([]*model.Film, error) {
	var films []*model.Film
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, NotFound("Films not Found")
	}
	return films, nil
}

// Count 电影总数
func (r *FilmRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Film{}).Count(&count).Error
	return count, err
}

// Save 持久化电影及其关联：
// 先插入新的关联实体，再写入电影本身和关联表，已存在的关联行不会重复插入
func (r *FilmRepository) Save(ctx context.Context, film *model.Film) error {
	for _, kind := range model.Kinds {
		var pending []model.Related
		for _, e := range film.Members(kind) {
			if e.GetID() == 0 {
				pending = append(pending, e)
			}
		}
		if len(pending) == 0 {
			continue
		}
		if err := r.entities[kind].CreateAll(ctx, pending); err != nil {
			return err
		}
	}

	omit := make([]string, 0, len(model.Kinds))
	for _, kind := range model.Kinds {
		omit = append(omit, kind.Field()+".*")
	}

	q := r.db.WithContext(ctx).Omit(omit...)
	var err error
	if film.ID == 0 {
		err = q.Create(film).Error
	} else {
		err = q.Save(film).Error
	}
	if IsUniqueViolation(err) {
		return Conflict("Film name must be unique")
	}
	return err
}

// UpdateFields 只更新载荷中出现的列，返回刷新后的电影
func (r *FilmRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*model.Film, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Film{ID: id}).Updates(fields).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, Conflict("Film name must be unique")
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete 删除电影及其全部关联行，关联实体本身保留
func (r *FilmRepository) Delete(ctx context.Context, id uint) error {
	var film model.Film
	err := r.db.WithContext(ctx).First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Film not Found")
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&film).Error
}
