package repomanager

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/releases"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. The DBTX
// handles it hands out are nil and ignored by its repositories.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memory.NewUserRepository(m.store)
}

func (m *MemoryRepositoryManager) Releases(dbx.DBTX) releases.Repository {
	return memory.NewReleaseRepository(m.store)
}

func (m *MemoryRepositoryManager) Conn() dbx.DBTX {
	return nil
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	return m.store.WithTx(ctx, func(ctx context.Context) error {
		return fn(ctx, nil)
	})
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
