package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound 记录或分页不存在
var ErrNotFound = errors.New("not found")

// ErrConflict 写入违反名称唯一约束
var ErrConflict = errors.New("conflict")

// Error 在哨兵错误之上附带面向用户的说明
type Error struct {
	Err    error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Err }

// NotFound 包装 ErrNotFound，如 "Film not Found"
func NotFound(detail string) error {
	return &Error{Err: ErrNotFound, Detail: detail}
}

// Conflict 包装 ErrConflict，如 "Film name must be unique"
func Conflict(detail string) error {
	return &Error{Err: ErrConflict, Detail: detail}
}

// Detail 取出面向用户的说明，普通错误返回空串
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}

// IsUniqueViolation 判断是否为唯一约束冲突（Postgres/MySQL/SQLite）
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	// 被包装后可能丢失类型，只能比对文本
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
