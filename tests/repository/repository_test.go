package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not found", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("query one: %w", sql.ErrNoRows), errNotFound},
		{"unique violation becomes duplicate", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg error passes through", &pgconn.PgError{Code: "23503"}, nil},
		{"plain error passes through", errors.New("connection reset"), nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := repository.MapError(test.err, errNotFound, errDuplicate)

			switch test.want {
			case nil:
				// Pass-through cases return the original error unchanged.
				if !errors.Is(got, test.err) && got != test.err {
					t.Errorf("MapError() = %v, want original %v", got, test.err)
				}
			default:
				if !errors.Is(got, test.want) {
					t.Errorf("MapError() = %v, want %v", got, test.want)
				}
			}
		})
	}
}
