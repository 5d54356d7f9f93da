// Package repomanager vends the user and release gateways for one storage
// backend and runs units of work against it atomically.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/releases"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Releases(db dbx.DBTX) releases.Repository

	// Conn is the non-transactional handle passed to Users/Releases for
	// single statement work.
	Conn() dbx.DBTX

	// WithTx runs fn as one unit of work. Repositories obtained from the
	// handle given to fn see and commit its changes together.
	WithTx(ctx context.Context, fn dbx.TxFunc) error

	RunMigrations(ctx context.Context) error
	Close() error
}

// MemoryDSN selects the in-process backend instead of PostgreSQL.
const MemoryDSN = "memory"

// Open returns the manager for dsn: an in-memory store for MemoryDSN,
// PostgreSQL otherwise.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == MemoryDSN {
		return NewMemoryRepositoryManager(), nil
	}
	return OpenPostgres(ctx, dsn)
}
