package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/utils"
)

// CreateFilm 创建电影，同时关联或创建制片人、演员、类型
func (h *Handler) CreateFilm(c *gin.Context) {
	var req model.FilmCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	film, err := h.Services.Films.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, film)
}

// GetFilm 电影详情
func (h *Handler) GetFilm(c *gin.Context) {
	id, ok := parseID(c, "Film")
	if !ok {
		return
	}

	film, err := h.Services.Films.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, film)
}

// ListFilms 电影分页列表，空页返回 404
func (h *Handler) ListFilms(c *gin.Context) {
	offset, limit, ok := parsePage(c, "Films")
	if !ok {
		return
	}

	films, err := h.Services.Films.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, films)
}

// UpdateFilm 部分更新电影
func (h *Handler) UpdateFilm(c *gin.Context) {
	id, ok := parseID(c, "Film")
	if !ok {
		return
	}
	var upd model.FilmUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		invalid(c, err)
		return
	}

	film, err := h.Services.Films.Update(c.Request.Context(), id, &upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, film)
}

// DeleteFilm 删除电影
func (h *Handler) DeleteFilm(c *gin.Context) {
	id, ok := parseID(c, "Film")
	if !ok {
		return
	}

	if err := h.Services.Films.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, model.Deleted())
}

// LinkFilm 为已有电影追加关联
func (h *Handler) LinkFilm(c *gin.Context) {
	id, ok := parseID(c, "Film")
	if !ok {
		return
	}
	var req model.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	film, err := h.Services.Films.Link(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, film)
}
