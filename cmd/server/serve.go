package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/user/films/internal/handler"
	"github.com/user/films/internal/repository"
	"github.com/user/films/internal/router"
	"github.com/user/films/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	// 初始化数据库
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	// 初始化仓库、缓存与服务
	repos := repository.NewRepositories(db)
	cache, err := service.NewReadCache(a.cfg.CacheTTL, a.cfg.CacheSize)
	if err != nil {
		return err
	}
	services := service.NewServices(repos, cache, a.log)

	// 初始化 Gin
	if a.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.NewHandler(services, a.cfg, a.log)
	r := router.NewEngine(h)

	if !a.cfg.AuthEnabled() {
		a.log.Warn("未配置 AUTH_SECRET，写接口不做鉴权")
	}

	// 配置 HTTP 服务器
	srv := &http.Server{
		Addr:           ":" + a.cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 等待中断信号以优雅地关闭服务器
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("服务器启动", "addr", "http://localhost:"+a.cfg.Port, "driver", a.cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.log.Info("服务器已退出")
	return nil
}
