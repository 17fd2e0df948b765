package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"mysql 1062", &mysql.MySQLError{Number: 1062}, true},
		{"mysql other", &mysql.MySQLError{Number: 1452}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: films.name"), true},
		{"plain", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestErrorWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("create film: %w", Conflict("Film name must be unique"))
	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected ErrConflict")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("conflict must not match ErrNotFound")
	}
	if Detail(err) != "Film name must be unique" {
		t.Fatalf("unexpected detail %q", Detail(err))
	}
	if Detail(errors.New("boom")) != "" {
		t.Fatal("plain errors carry no detail")
	}
	if !errors.Is(NotFound("Film not Found"), ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
}
