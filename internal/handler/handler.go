package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/films/internal/config"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
	"github.com/user/films/internal/service"
	"github.com/user/films/internal/utils"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 10
)

// Handler HTTP 处理器
type Handler struct {
	Services *service.Services
	Config   *config.Config
	Log      *slog.Logger
}

// NewHandler 创建处理器
func NewHandler(services *service.Services, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		Services: services,
		Config:   cfg,
		Log:      log,
	}
}

// fail 把服务层错误翻译为 HTTP 响应
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c, repository.Detail(err))
	case errors.Is(err, repository.ErrConflict):
		utils.BadRequest(c, repository.Detail(err))
	default:
		h.Log.Error("请求处理失败",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		utils.InternalServerError(c, "")
	}
}

// invalid 请求体无法解析或校验失败，返回 422
func invalid(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fieldPath(fe.Namespace()), fe.Tag()))
		}
		utils.UnprocessableEntity(c, strings.Join(msgs, "; "))
		return
	}
	utils.UnprocessableEntity(c, "Invalid request body: "+err.Error())
}

// fieldPath 去掉最外层结构体名，如 FilmCreateRequest.Film.Name -> Film.Name
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// parseID 非法 ID 按不存在处理
func parseID(c *gin.Context, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.NotFound(c, label+" not Found")
		return 0, false
	}
	return uint(id), true
}

// parsePage 读取 offset/limit，limit 取 1..10；负 offset 与空页一样按不存在处理
func parsePage(c *gin.Context, plural string) (offset, limit int, ok bool) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		utils.UnprocessableEntity(c, "offset must be an integer")
		return 0, 0, false
	}
	if offset < 0 {
		utils.NotFound(c, plural+" not Found")
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 || limit > maxPageLimit {
		utils.UnprocessableEntity(c, fmt.Sprintf("limit must be between 1 and %d", maxPageLimit))
		return 0, 0, false
	}
	return offset, limit, true
}

// entityService 按种类取得实体服务
func (h *Handler) entityService(kind model.Kind) *service.EntityService {
	return h.Services.Entities[kind]
}
