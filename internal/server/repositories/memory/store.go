// Package memory implements the user and release gateways on top of
// process-local maps. It backs tests and the embedded ledger mode.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	newID = uuid.NewString
	now   = time.Now
)

// Store holds every record kept by the in-memory gateways.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	users    map[string]userRecord
	releases map[string]releaseRecord
	seq      int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]userRecord),
		releases: make(map[string]releaseRecord),
	}
}

type txKey struct{}

// undoLog keeps the state each key had before a transaction first wrote
// it. A nil entry means the key did not exist.
type undoLog struct {
	users    map[string]*userRecord
	releases map[string]*releaseRecord
}

func txFromContext(ctx context.Context) *undoLog {
	u, _ := ctx.Value(txKey{}).(*undoLog)
	return u
}

// WithTx runs fn as one transaction. Writes made through the context given
// to fn are undone when fn returns an error or panics. Writes made outside
// the transaction in the meantime are kept.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	undo := &undoLog{
		users:    make(map[string]*userRecord),
		releases: make(map[string]*releaseRecord),
	}

	defer func() {
		if p := recover(); p != nil {
			s.rollback(undo)
			panic(p)
		}
		if err != nil {
			s.rollback(undo)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, undo))
}

// touchUser records the current state of user id in the transaction bound
// to ctx, if any. Callers hold s.mu for writing.
func (s *Store) touchUser(ctx context.Context, id string) {
	undo := txFromContext(ctx)
	if undo == nil {
		return
	}
	if _, seen := undo.users[id]; seen {
		return
	}
	if rec, ok := s.users[id]; ok {
		undo.users[id] = &rec
	} else {
		undo.users[id] = nil
	}
}

// touchRelease is touchUser for releases.
func (s *Store) touchRelease(ctx context.Context, id string) {
	undo := txFromContext(ctx)
	if undo == nil {
		return
	}
	if _, seen := undo.releases[id]; seen {
		return
	}
	if rec, ok := s.releases[id]; ok {
		undo.releases[id] = &rec
	} else {
		undo.releases[id] = nil
	}
}

func (s *Store) rollback(undo *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range undo.users {
		if rec == nil {
			delete(s.users, id)
		} else {
			s.users[id] = *rec
		}
	}
	for id, rec := range undo.releases {
		if rec == nil {
			delete(s.releases, id)
		} else {
			s.releases[id] = *rec
		}
	}
}
