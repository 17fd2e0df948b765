package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/films/internal/handler"
	"github.com/user/films/internal/middleware"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/utils"
)

// NewEngine 创建 Gin 引擎并挂载中间件与路由
func NewEngine(h *handler.Handler) *gin.Engine {
	r := gin.New()

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(h.Log))
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "")
	})

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 写操作鉴权，未配置密钥时放行
	writeAuth := middleware.RequireAuth(h.Config.AuthSecret)

	// ==================== 电影 ====================
	films := r.Group("/films")
	{
		films.GET("/", h.ListFilms)
		films.GET("/:id", h.GetFilm)
		films.POST("/", writeAuth, h.CreateFilm)
		films.PATCH("/:id", writeAuth, h.UpdateFilm)
		films.DELETE("/:id", writeAuth, h.DeleteFilm)
		films.POST("/:id/links", writeAuth, h.LinkFilm)
	}

	// ==================== 制片人 / 演员 / 类型 ====================
	for _, kind := range model.Kinds {
		g := r.Group("/" + strings.ToLower(kind.Plural()))
		{
			g.GET("/", h.ListEntities(kind))
			g.GET("/:id", h.GetEntity(kind))
			g.POST("/", writeAuth, h.CreateEntity(kind))
			g.PATCH("/:id", writeAuth, h.UpdateEntity(kind))
			g.DELETE("/:id", writeAuth, h.DeleteEntity(kind))
		}
	}
}
