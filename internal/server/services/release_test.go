package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseSvc(r *fakeReleasesRepo) *ReleaseService {
	return NewReleaseService(&fakeRepoManager{r: r})
}

func validRelease() *models.Release {
	return &models.Release{
		Description: "rent",
		Month:       1,
		Year:        2021,
		UserID:      "u1",
		Amount:      decimal.NewFromInt(10),
		Type:        models.ReleaseTypeIncome,
	}
}

func TestValidate_Order(t *testing.T) {
	s := newReleaseSvc(&fakeReleasesRepo{})

	r := &models.Release{}
	steps := []struct {
		msg  string
		fill func(*models.Release)
	}{
		{MsgInvalidDescription, func(r *models.Release) { r.Description = "rent" }},
		{MsgInvalidMonth, func(r *models.Release) { r.Month = 1 }},
		{MsgInvalidYear, func(r *models.Release) { r.Year = 2021 }},
		{MsgMissingUser, func(r *models.Release) { r.UserID = "u1" }},
		{MsgInvalidAmount, func(r *models.Release) { r.Amount = decimal.NewFromInt(1) }},
		{MsgMissingType, func(r *models.Release) { r.Type = models.ReleaseTypeExpense }},
	}

	for _, st := range steps {
		err := s.Validate(r)
		require.ErrorIs(t, err, common.ErrBusinessRule)
		assert.Equal(t, st.msg, err.Error())
		st.fill(r)
	}

	assert.NoError(t, s.Validate(r))
}

func TestValidate_Boundaries(t *testing.T) {
	s := newReleaseSvc(&fakeReleasesRepo{})

	tests := []struct {
		name   string
		mutate func(*models.Release)
		msg    string
	}{
		{"blank description", func(r *models.Release) { r.Description = " \t\n" }, MsgInvalidDescription},
		{"month zero", func(r *models.Release) { r.Month = 0 }, MsgInvalidMonth},
		{"month 13", func(r *models.Release) { r.Month = 13 }, MsgInvalidMonth},
		{"month negative", func(r *models.Release) { r.Month = -1 }, MsgInvalidMonth},
		{"month 12", func(r *models.Release) { r.Month = 12 }, ""},
		{"year 3 digits", func(r *models.Release) { r.Year = 202 }, MsgInvalidYear},
		{"year 5 digits", func(r *models.Release) { r.Year = 10000 }, MsgInvalidYear},
		{"year 1000", func(r *models.Release) { r.Year = 1000 }, ""},
		{"year 9999", func(r *models.Release) { r.Year = 9999 }, ""},
		{"amount zero", func(r *models.Release) { r.Amount = decimal.Zero }, MsgInvalidAmount},
		{"amount negative", func(r *models.Release) { r.Amount = decimal.NewFromInt(-5) }, MsgInvalidAmount},
		{"amount cent", func(r *models.Release) { r.Amount = decimal.RequireFromString("0.01") }, ""},
		{"amount trailing zeros", func(r *models.Release) { r.Amount = decimal.RequireFromString("12.5000") }, ""},
		{"amount below a cent", func(r *models.Release) { r.Amount = decimal.RequireFromString("0.001") }, MsgInvalidAmount},
		{"amount half cent", func(r *models.Release) { r.Amount = decimal.RequireFromString("0.005") }, MsgInvalidAmount},
		{"amount three places", func(r *models.Release) { r.Amount = decimal.RequireFromString("10.125") }, MsgInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRelease()
			tt.mutate(r)
			err := s.Validate(r)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrBusinessRule)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestCreate_ForcesPending(t *testing.T) {
	for _, st := range []models.ReleaseStatus{"", models.ReleaseStatusPending, models.ReleaseStatusSettled, models.ReleaseStatusCancelled} {
		repo := &fakeReleasesRepo{}
		s := newReleaseSvc(repo)

		r := validRelease()
		r.Status = st

		got, err := s.Create(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, models.ReleaseStatusPending, got.Status)
		require.Len(t, repo.saved, 1)
		assert.Equal(t, models.ReleaseStatusPending, repo.saved[0].Status)
	}
}

func TestCreate_InvalidNeverSaves(t *testing.T) {
	repo := &fakeReleasesRepo{}
	s := newReleaseSvc(repo)

	r := validRelease()
	r.Type = ""

	_, err := s.Create(context.Background(), r)
	require.ErrorIs(t, err, common.ErrBusinessRule)
	assert.Empty(t, repo.saved)
}

func TestCreate_StorageError(t *testing.T) {
	s := newReleaseSvc(&fakeReleasesRepo{saveErr: errors.New("db error: down")})

	_, err := s.Create(context.Background(), validRelease())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, "db error: down", err.Error())
}

func TestUpdate(t *testing.T) {
	repo := &fakeReleasesRepo{}
	s := newReleaseSvc(repo)

	_, err := s.Update(context.Background(), validRelease())
	require.ErrorIs(t, err, common.ErrPrecondition)
	assert.Equal(t, MsgUpdateUnsaved, err.Error())
	assert.Empty(t, repo.saved)

	r := validRelease()
	r.ID = "r1"
	r.Month = 0
	_, err = s.Update(context.Background(), r)
	assert.ErrorIs(t, err, common.ErrBusinessRule)
	assert.Empty(t, repo.saved)

	r.Month = 2
	r.Status = models.ReleaseStatusSettled
	got, err := s.Update(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, models.ReleaseStatusSettled, got.Status, "update keeps caller status")
	assert.Len(t, repo.saved, 1)
}

func TestDelete(t *testing.T) {
	repo := &fakeReleasesRepo{}
	s := newReleaseSvc(repo)

	err := s.Delete(context.Background(), validRelease())
	require.ErrorIs(t, err, common.ErrPrecondition)
	assert.Equal(t, MsgDeleteUnsaved, err.Error())
	assert.Empty(t, repo.deleted)

	r := validRelease()
	r.ID = "r1"
	require.NoError(t, s.Delete(context.Background(), r))
	assert.Equal(t, []string{"r1"}, repo.deleted)

	repo.deleteErr = errors.New("gone")
	assert.ErrorIs(t, s.Delete(context.Background(), r), common.ErrStorage)
}

func TestChangeStatus_SavesOnce(t *testing.T) {
	repo := &fakeReleasesRepo{}
	s := newReleaseSvc(repo)

	r := validRelease()
	r.ID = "r1"
	r.Status = models.ReleaseStatusPending

	got, err := s.ChangeStatus(context.Background(), r, models.ReleaseStatusSettled)
	require.NoError(t, err)
	assert.Equal(t, models.ReleaseStatusSettled, r.Status)
	assert.Equal(t, models.ReleaseStatusSettled, got.Status)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, models.ReleaseStatusSettled, repo.saved[0].Status)
}

func TestChangeStatus_AllTransitions(t *testing.T) {
	all := []models.ReleaseStatus{models.ReleaseStatusPending, models.ReleaseStatusSettled, models.ReleaseStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				s := newReleaseSvc(&fakeReleasesRepo{})
				r := validRelease()
				r.ID = "r1"
				r.Status = from

				got, err := s.ChangeStatus(context.Background(), r, to)
				require.NoError(t, err)
				assert.Equal(t, to, got.Status)
			})
		}
	}
}

func TestChangeStatus_Unsaved(t *testing.T) {
	repo := &fakeReleasesRepo{}
	s := newReleaseSvc(repo)

	_, err := s.ChangeStatus(context.Background(), validRelease(), models.ReleaseStatusCancelled)
	assert.ErrorIs(t, err, common.ErrPrecondition)
	assert.Empty(t, repo.saved)
}

func TestSearch(t *testing.T) {
	out := []*models.Release{{ID: "r1"}, {ID: "r2"}}
	repo := &fakeReleasesRepo{findOut: out}
	s := newReleaseSvc(repo)

	f := models.ReleaseFilter{UserID: "u1", Status: models.ReleaseStatusSettled}
	got, err := s.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, out, got)
	assert.Equal(t, []models.ReleaseFilter{f}, repo.findIn)

	repo.findErr = errors.New("boom")
	_, err = s.Search(context.Background(), f)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestFindByID(t *testing.T) {
	repo := &fakeReleasesRepo{getOut: &models.Release{ID: "r1"}}
	s := newReleaseSvc(repo)

	got, err := s.FindByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)

	repo.getErr = common.ErrorNotFound
	_, err = s.FindByID(context.Background(), "r9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, common.Kind(0), common.KindOf(err))

	repo.getErr = errors.New("boom")
	_, err = s.FindByID(context.Background(), "r1")
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestBalanceForUser(t *testing.T) {
	repo := &fakeReleasesRepo{sums: map[sumKey]decimal.Decimal{
		{models.ReleaseTypeIncome, models.ReleaseStatusSettled}:  decimal.NewFromInt(150),
		{models.ReleaseTypeExpense, models.ReleaseStatusSettled}: decimal.NewFromInt(30),
		{models.ReleaseTypeIncome, models.ReleaseStatusPending}:  decimal.NewFromInt(9999),
	}}
	s := newReleaseSvc(repo)

	got, err := s.BalanceForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(got), "got %s", got)
}

func TestBalanceForUser_MissingSumsAreZero(t *testing.T) {
	s := newReleaseSvc(&fakeReleasesRepo{})

	got, err := s.BalanceForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBalanceForUser_StorageErrors(t *testing.T) {
	for _, typ := range []models.ReleaseType{models.ReleaseTypeIncome, models.ReleaseTypeExpense} {
		s := newReleaseSvc(&fakeReleasesRepo{sumErr: map[models.ReleaseType]error{typ: errors.New("sum failed")}})

		_, err := s.BalanceForUser(context.Background(), "u1")
		assert.ErrorIs(t, err, common.ErrStorage)
	}
}
