// Package users declares the user gateway contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

type Repository interface {
	// Save inserts the user, assigning ID and RegisteredOn when absent, or
	// updates it by ID. A taken email yields common.ErrorAlreadyExists.
	Save(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
