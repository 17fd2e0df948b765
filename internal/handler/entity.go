package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/utils"
)

// ==================== 制片人 / 演员 / 类型 ====================
// 三种实体共用同一组处理器，按路由注册时传入的种类分派

// CreateEntity 单独创建实体
func (h *Handler) CreateEntity(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var spec model.EntitySpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			invalid(c, err)
			return
		}

		created, err := h.entityService(kind).Create(c.Request.Context(), spec)
		if err != nil {
			h.fail(c, err)
			return
		}
		utils.Success(c, created)
	}
}

// GetEntity 实体详情（含电影）
func (h *Handler) GetEntity(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, kind.Label())
		if !ok {
			return
		}

		e, err := h.entityService(kind).Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err)
			return
		}
		utils.Success(c, e)
	}
}

// ListEntities 分页列表，空页返回 404
func (h *Handler) ListEntities(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePage(c, kind.Plural())
		if !ok {
			return
		}

		items, err := h.entityService(kind).List(c.Request.Context(), offset, limit)
		if err != nil {
			h.fail(c, err)
			return
		}
		utils.Success(c, items)
	}
}

// UpdateEntity 部分更新实体
func (h *Handler) UpdateEntity(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, kind.Label())
		if !ok {
			return
		}
		var upd model.EntityUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			invalid(c, err)
			return
		}

		e, err := h.entityService(kind).Update(c.Request.Context(), id, &upd)
		if err != nil {
			h.fail(c, err)
			return
		}
		utils.Success(c, e)
	}
}

// DeleteEntity 删除实体
func (h *Handler) DeleteEntity(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, kind.Label())
		if !ok {
			return
		}

		if err := h.entityService(kind).Delete(c.Request.Context(), id); err != nil {
			h.fail(c, err)
			return
		}
		utils.Success(c, model.Deleted())
	}
}
