package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/films/internal/config"
	"github.com/user/films/internal/logging"
	"github.com/user/films/internal/repository"
	"gorm.io/gorm"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Film catalog API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newFilmsCommand())
	root.AddCommand(newTokenCommand())

	return root
}

// app 各子命令共享的启动依赖
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// bootstrap 加载环境变量、配置与日志
func bootstrap() (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		log.Debug("未找到 .env 文件，使用系统环境变量")
	}

	return &app{cfg: cfg, log: log}, nil
}

// openDB 连接并迁移数据库
func (a *app) openDB() (*gorm.DB, error) {
	db, err := repository.InitDB(a.cfg.DBDriver, a.cfg.DatabaseURL, a.log)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
