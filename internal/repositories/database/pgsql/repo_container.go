package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BookRepo:      newPgxBookRepository(pool),
		BorrowingRepo: newPgxBorrowingRepository(pool),
		UserRepo:      newPgxUserRepository(pool),
	}
}
