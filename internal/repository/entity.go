package repository

import (
	"context"
	"fmt"

	"github.com/user/films/internal/model"
	"gorm.io/gorm"
)

// EntityStore 制片人/演员/类型的统一仓库接口，按种类分派
type EntityStore interface {
	Kind() model.Kind
	FindByName(ctx context.Context, name string) (model.Related, error)
	GetByID(ctx context.Context, id uint) (model.Related, error)
	List(ctx context.Context, offset, limit int) ([]model.Related, error)
	Create(ctx context.Context, name string) (model.Related, error)
	CreateAll(ctx context.Context, items []model.Related) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (model.Related, error)
	Delete(ctx context.Context, id uint) error
}

// EntityRepository 某一种类关联实体的仓库
type EntityRepository[T any, PT interface {
	*T
	model.Related
}] struct {
	db   *gorm.DB
	kind model.Kind
}

// NewEntityRepository 创建实体仓库
func NewEntityRepository[T any, PT interface {
	*T
	model.Related
}](db *gorm.DB, kind model.Kind) *EntityRepository[T, PT] {
	return &EntityRepository[T, PT]{db: db, kind: kind}
}

// Kind 仓库负责的种类
func (r *EntityRepository[T, PT]) Kind() model.Kind {
	return r.kind
}

// FindByName 按名称精确查找（区分大小写），不存在返回 nil, nil
func (r *EntityRepository[T, PT]) FindByName(ctx context.Context, name string) (model.Related, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查找%s失败: %w", r.kind.Label(), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return PT(&rows[0]), nil
}

// GetByID 根据 ID 查找，附带关联电影
func (r *EntityRepository[T, PT]) GetByID(ctx context.Context, id uint) (model.Related, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Preload("Films", orderByID).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NotFound(r.kind.Label() + " not Found")
	}
	return PT(&rows[0]), nil
}

// List 分页获取，结果为空时返回 ErrNotFound
func (r *EntityRepository[T, PT]) List(ctx context.Context, offset, limit int) ([]model.Related, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NotFound(r.kind.Plural() + " not Found")
	}
	items := make([]model.Related, 0, len(rows))
	for i := range rows {
		items = append(items, PT(&rows[i]))
	}
	return items, nil
}

// Create 单独创建实体，同名时返回冲突
func (r *EntityRepository[T, PT]) Create(ctx context.Context, name string) (model.Related, error) {
	item := PT(new(T))
	item.SetName(name)
	if err := r.CreateAll(ctx, []model.Related{item}); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateAll 插入尚未持久化的实体，不处理其电影关联
func (r *EntityRepository[T, PT]) CreateAll(ctx context.Context, items []model.Related) error {
	for _, item := range items {
		if err := r.db.WithContext(ctx).Omit("Films").Create(item).Error; err != nil {
			if IsUniqueViolation(err) {
				return Conflict(r.kind.Label() + " name must be unique")
			}
			return err
		}
	}
	return nil
}

// UpdateFields 只更新载荷中出现的列，返回刷新后的实体
func (r *EntityRepository[T, PT]) UpdateFields(ctx context.Context, id uint, fields map[string]any) (model.Related, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).Model(existing).Omit("Films").Updates(fields).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, Conflict(r.kind.Label() + " name must be unique")
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete 删除实体及其所有电影关联
func (r *EntityRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	var rows []T
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return NotFound(r.kind.Label() + " not Found")
	}
	return r.db.WithContext(ctx).Select("Films").Delete(PT(&rows[0])).Error
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
