package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReleaseType carries the sign of a release with respect to the balance.
type ReleaseType string

const (
	ReleaseTypeIncome  ReleaseType = "INCOME"
	ReleaseTypeExpense ReleaseType = "EXPENSE"
)

func (t ReleaseType) Valid() bool {
	return t == ReleaseTypeIncome || t == ReleaseTypeExpense
}

// ReleaseStatus is the lifecycle stage of a release.
type ReleaseStatus string

const (
	ReleaseStatusPending   ReleaseStatus = "PENDING"
	ReleaseStatusSettled   ReleaseStatus = "SETTLED"
	ReleaseStatusCancelled ReleaseStatus = "CANCELLED"
)

func (s ReleaseStatus) Valid() bool {
	switch s {
	case ReleaseStatusPending, ReleaseStatusSettled, ReleaseStatusCancelled:
		return true
	}
	return false
}

// Release is a single bookkeeping entry owned by a user. Zero values mean
// "absent": an empty ID marks a release that was never persisted.
type Release struct {
	ID          string
	Description string
	Month       int
	Year        int
	UserID      string
	Amount      decimal.Decimal
	Type        ReleaseType
	Status      ReleaseStatus
	CreatedOn   time.Time
	ReceiptKey  string
}

// ReleaseFilter selects releases by example. Only non-zero fields
// constrain the result; strings match exactly.
type ReleaseFilter struct {
	ID          string
	Description string
	Month       int
	Year        int
	UserID      string
	Amount      decimal.Decimal
	Type        ReleaseType
	Status      ReleaseStatus
}

// FilterFor builds a filter that matches releases equal to r on every
// field r has set.
func FilterFor(r *Release) ReleaseFilter {
	return ReleaseFilter{
		ID:          r.ID,
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		UserID:      r.UserID,
		Amount:      r.Amount,
		Type:        r.Type,
		Status:      r.Status,
	}
}

// Matches reports whether r satisfies every set field of f.
func (f ReleaseFilter) Matches(r *Release) bool {
	switch {
	case f.ID != "" && f.ID != r.ID:
		return false
	case f.Description != "" && f.Description != r.Description:
		return false
	case f.Month != 0 && f.Month != r.Month:
		return false
	case f.Year != 0 && f.Year != r.Year:
		return false
	case f.UserID != "" && f.UserID != r.UserID:
		return false
	case !f.Amount.IsZero() && !f.Amount.Equal(r.Amount):
		return false
	case f.Type != "" && f.Type != r.Type:
		return false
	case f.Status != "" && f.Status != r.Status:
		return false
	}
	return true
}
