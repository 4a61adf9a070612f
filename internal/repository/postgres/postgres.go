package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sheerent-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ItemRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		UserRepository:   NewUserRepository(db),
		ItemRepository:   NewItemRepository(db),
		RentalRepository: NewRentalRepository(db),
	}
}

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on a specific constraint.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
