package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/user/films/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 按驱动初始化数据库连接
func InitDB(driver, databaseURL string, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(databaseURL)
	case "mysql":
		dialector = mysql.Open(databaseURL)
	case "sqlite":
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池，SQLite 只允许单连接写入
	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// Migrate 自动建表（含三张关联表）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Film{}, &model.Producer{}, &model.Actor{}, &model.Genre{})
}

func newGormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	if log.Enabled(context.Background(), slog.LevelDebug) {
		level = logger.Info
	}
	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelDebug), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Repositories 仓库集合，同时作为一次请求的工作单元
type Repositories struct {
	DB       *gorm.DB
	Film     *FilmRepository
	Entities map[model.Kind]EntityStore
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	stores := []EntityStore{
		NewEntityRepository[model.Producer](db, model.KindProducer),
		NewEntityRepository[model.Actor](db, model.KindActor),
		NewEntityRepository[model.Genre](db, model.KindGenre),
	}
	entities := make(map[model.Kind]EntityStore, len(stores))
	for _, store := range stores {
		entities[store.Kind()] = store
	}
	return &Repositories{
		DB:       db,
		Film:     NewFilmRepository(db, entities),
		Entities: entities,
	}
}

// Entity 按种类取得实体仓库
func (r *Repositories) Entity(kind model.Kind) EntityStore {
	return r.Entities[kind]
}

// Transaction 在一个事务内执行 fn：返回 nil 时提交，否则回滚
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// FindByName 按种类和名称查找已持久化实体，不存在返回 nil, nil
func (r *Repositories) FindByName(ctx context.Context, kind model.Kind, name string) (model.Related, error) {
	store, ok := r.Entities[kind]
	if !ok {
		return nil, fmt.Errorf("未知的实体种类: %s", kind)
	}
	return store.FindByName(ctx, name)
}
