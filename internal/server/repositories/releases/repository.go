// Package releases declares the release gateway contract and its
// PostgreSQL implementation.
package releases

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// Save inserts the release, assigning ID and CreatedOn when absent, or
	// replaces the stored one with the same ID. The returned release carries
	// the stored CreatedOn.
	Save(ctx context.Context, r *models.Release) (*models.Release, error)

	// SetReceiptKey updates only the receipt key. Unknown ids yield
	// common.ErrorNotFound.
	SetReceiptKey(ctx context.Context, id, key string) error

	// Delete removes the release. An empty id yields common.ErrorMissingID.
	Delete(ctx context.Context, id string) error

	// GetByID returns common.ErrorNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Release, error)

	// Find returns releases matching every non-zero field of the filter.
	Find(ctx context.Context, f models.ReleaseFilter) ([]*models.Release, error)

	// SumAmount totals amounts of the user's releases with the given type
	// and status. Zero when none match.
	SumAmount(ctx context.Context, userID string, t models.ReleaseType, s models.ReleaseStatus) (decimal.Decimal, error)
}
