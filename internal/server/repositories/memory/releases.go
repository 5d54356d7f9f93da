package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

type releaseRecord struct {
	release models.Release
	seq     int64
}

type ReleaseRepository struct {
	store *Store
}

func NewReleaseRepository(s *Store) *ReleaseRepository {
	return &ReleaseRepository{store: s}
}

func (r *ReleaseRepository) Save(ctx context.Context, rel *models.Release) (*models.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	saved := *rel
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedOn.IsZero() {
		saved.CreatedOn = now()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[saved.UserID]; !ok {
		return nil, fmt.Errorf("db error: user %q does not exist", saved.UserID)
	}

	r.store.touchRelease(ctx, saved.ID)

	rec, ok := r.store.releases[saved.ID]
	if !ok {
		r.store.seq++
		rec.seq = r.store.seq
	} else {
		saved.CreatedOn = rec.release.CreatedOn
	}
	rec.release = saved
	r.store.releases[saved.ID] = rec

	out := saved
	return &out, nil
}

func (r *ReleaseRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return common.ErrorMissingID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.touchRelease(ctx, id)
	delete(r.store.releases, id)
	return nil
}

func (r *ReleaseRepository) SetReceiptKey(ctx context.Context, id, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.releases[id]
	if !ok {
		return common.ErrorNotFound
	}

	r.store.touchRelease(ctx, id)
	rec.release.ReceiptKey = key
	r.store.releases[id] = rec
	return nil
}

func (r *ReleaseRepository) GetByID(ctx context.Context, id string) (*models.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.releases[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := rec.release
	return &out, nil
}

// Find returns matches in insertion order.
func (r *ReleaseRepository) Find(ctx context.Context, f models.ReleaseFilter) ([]*models.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]releaseRecord, 0)
	for _, rec := range r.store.releases {
		if f.Matches(&rec.release) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	result := make([]*models.Release, 0, len(matched))
	for _, rec := range matched {
		out := rec.release
		result = append(result, &out)
	}
	return result, nil
}

func (r *ReleaseRepository) SumAmount(ctx context.Context, userID string, t models.ReleaseType, s models.ReleaseStatus) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := decimal.Zero
	for _, rec := range r.store.releases {
		rel := rec.release
		if rel.UserID == userID && rel.Type == t && rel.Status == s {
			sum = sum.Add(rel.Amount)
		}
	}
	return sum, nil
}
