package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/releases"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidDescription = "Informe uma descrição válida."
	MsgInvalidMonth       = "Informe um mês válido."
	MsgInvalidYear        = "Informe um ano válido."
	MsgMissingUser        = "Informe um usuário.."
	MsgInvalidAmount      = "Informe um valor válido.."
	MsgMissingType        = "Informe um tipo de lançamento."

	MsgUpdateUnsaved = "cannot update an unsaved release"
	MsgDeleteUnsaved = "cannot delete an unsaved release"
)

// amountScale is the number of decimal places an amount may carry.
const amountScale = 2

type ReleaseService struct {
	repomanager repomanager.RepositoryManager
}

func NewReleaseService(m repomanager.RepositoryManager) *ReleaseService {
	return &ReleaseService{repomanager: m}
}

func (s *ReleaseService) repo() releases.Repository {
	return s.repomanager.Releases(s.repomanager.Conn())
}

// Validate checks r field by field and reports the first violation.
func (s *ReleaseService) Validate(r *models.Release) error {
	switch {
	case strings.TrimSpace(r.Description) == "":
		return common.BusinessRuleError(MsgInvalidDescription)
	case r.Month < 1 || r.Month > 12:
		return common.BusinessRuleError(MsgInvalidMonth)
	case r.Year < 1000 || r.Year > 9999:
		return common.BusinessRuleError(MsgInvalidYear)
	case r.UserID == "":
		return common.BusinessRuleError(MsgMissingUser)
	case !r.Amount.IsPositive() || !r.Amount.Equal(r.Amount.Round(amountScale)):
		return common.BusinessRuleError(MsgInvalidAmount)
	case r.Type == "":
		return common.BusinessRuleError(MsgMissingType)
	}
	return nil
}

// Create validates r and stores it as PENDING whatever status it carried.
func (s *ReleaseService) Create(ctx context.Context, r *models.Release) (*models.Release, error) {
	if err := s.Validate(r); err != nil {
		return nil, err
	}

	r.Status = models.ReleaseStatusPending

	saved, err := s.repo().Save(ctx, r)
	if err != nil {
		return nil, common.StorageError(err)
	}
	return saved, nil
}

func (s *ReleaseService) Update(ctx context.Context, r *models.Release) (*models.Release, error) {
	if r.ID == "" {
		return nil, common.PreconditionError(MsgUpdateUnsaved)
	}

	if err := s.Validate(r); err != nil {
		return nil, err
	}

	saved, err := s.repo().Save(ctx, r)
	if err != nil {
		return nil, common.StorageError(err)
	}
	return saved, nil
}

func (s *ReleaseService) Delete(ctx context.Context, r *models.Release) error {
	if r.ID == "" {
		return common.PreconditionError(MsgDeleteUnsaved)
	}

	if err := s.repo().Delete(ctx, r.ID); err != nil {
		return common.StorageError(err)
	}
	return nil
}

// ChangeStatus moves r to status. Every transition is allowed.
func (s *ReleaseService) ChangeStatus(ctx context.Context, r *models.Release, status models.ReleaseStatus) (*models.Release, error) {
	r.Status = status
	return s.Update(ctx, r)
}

func (s *ReleaseService) Search(ctx context.Context, f models.ReleaseFilter) ([]*models.Release, error) {
	found, err := s.repo().Find(ctx, f)
	if err != nil {
		return nil, common.StorageError(err)
	}
	return found, nil
}

// FindByID returns common.ErrorNotFound for unknown ids.
func (s *ReleaseService) FindByID(ctx context.Context, id string) (*models.Release, error) {
	r, err := s.repo().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.StorageError(err)
	}
	return r, nil
}

// BalanceForUser is settled income minus settled expense.
func (s *ReleaseService) BalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	repo := s.repo()

	income, err := repo.SumAmount(ctx, userID, models.ReleaseTypeIncome, models.ReleaseStatusSettled)
	if err != nil {
		return decimal.Zero, common.StorageError(err)
	}

	expense, err := repo.SumAmount(ctx, userID, models.ReleaseTypeExpense, models.ReleaseStatusSettled)
	if err != nil {
		return decimal.Zero, common.StorageError(err)
	}

	return income.Sub(expense), nil
}
