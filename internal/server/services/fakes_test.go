package services

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/releases"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
	"github.com/shopspring/decimal"
)

type fakeUsersRepo struct {
	exists    bool
	existsErr error

	saved   []*models.User
	saveErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Save(_ context.Context, u *models.User) (*models.User, error) {
	cp := *u
	f.saved = append(f.saved, &cp)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	out := cp
	if out.ID == "" {
		out.ID = "u-new"
	}
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}

type sumKey struct {
	t models.ReleaseType
	s models.ReleaseStatus
}

type fakeReleasesRepo struct {
	saved   []*models.Release
	saveErr error

	deleted   []string
	deleteErr error

	getOut *models.Release
	getErr error

	findIn  []models.ReleaseFilter
	findOut []*models.Release
	findErr error

	sums   map[sumKey]decimal.Decimal
	sumErr map[models.ReleaseType]error

	receiptKeys map[string]string
	receiptErr  error
}

func (f *fakeReleasesRepo) SetReceiptKey(_ context.Context, id, key string) error {
	if f.receiptErr != nil {
		return f.receiptErr
	}
	if f.receiptKeys == nil {
		f.receiptKeys = make(map[string]string)
	}
	f.receiptKeys[id] = key
	return nil
}

func (f *fakeReleasesRepo) Save(_ context.Context, r *models.Release) (*models.Release, error) {
	cp := *r
	f.saved = append(f.saved, &cp)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	out := cp
	if out.ID == "" {
		out.ID = "r-new"
	}
	return &out, nil
}

func (f *fakeReleasesRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeReleasesRepo) GetByID(context.Context, string) (*models.Release, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := *f.getOut
	return &out, nil
}

func (f *fakeReleasesRepo) Find(_ context.Context, flt models.ReleaseFilter) ([]*models.Release, error) {
	f.findIn = append(f.findIn, flt)
	return f.findOut, f.findErr
}

func (f *fakeReleasesRepo) SumAmount(_ context.Context, _ string, t models.ReleaseType, s models.ReleaseStatus) (decimal.Decimal, error) {
	if err := f.sumErr[t]; err != nil {
		return decimal.Zero, err
	}
	return f.sums[sumKey{t, s}], nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeReleasesRepo

	txCalls   int
	commitErr error
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return m.u }
func (m *fakeRepoManager) Releases(dbx.DBTX) releases.Repository { return m.r }
func (m *fakeRepoManager) Conn() dbx.DBTX                        { return nil }
func (m *fakeRepoManager) RunMigrations(context.Context) error   { return nil }
func (m *fakeRepoManager) Close() error                          { return nil }

func (m *fakeRepoManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txCalls++
	if err := fn(ctx, nil); err != nil {
		return err
	}
	return m.commitErr
}
