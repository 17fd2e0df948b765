package service

import (
	"context"

	"github.com/user/films/internal/model"
)

// Lookup 按名称查找已持久化的关联实体，不存在时返回 nil, nil
type Lookup interface {
	FindByName(ctx context.Context, kind model.Kind, name string) (model.Related, error)
}

// LinkOrCreate 把 specs 中的每个实体解析为已存在的行或新实体，并与 film 建立双向关联。
//
// 按输入顺序处理：film 已关联同名实体时跳过；库中存在同名行时两侧互相追加；
// 否则构造新实体挂到 film 上，由调用方的保存步骤插入。
// 只返回查找本身的错误，唯一性冲突在提交时由调用方处理。
func LinkOrCreate(ctx context.Context, lookup Lookup, specs []model.EntitySpec, kind model.Kind, film *model.Film) error {
	for _, spec := range specs {
		if film.Holds(kind, spec.Name) {
			continue
		}

		existing, err := lookup.FindByName(ctx, kind, spec.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.LinkFilm(film)
			film.Attach(kind, existing)
			continue
		}

		film.Attach(kind, kind.New(spec.Name))
	}
	return nil
}

// LinkAll 依次处理制片人、演员、类型
func LinkAll(ctx context.Context, lookup Lookup, req model.LinkRequest, film *model.Film) error {
	for _, kind := range model.Kinds {
		if err := LinkOrCreate(ctx, lookup, req.Specs(kind), kind, film); err != nil {
			return err
		}
	}
	return nil
}
