// Package services holds the ledger's domain operations: user registration
// and authentication, release bookkeeping, balance and receipts.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/auth"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

const (
	MsgEmailTaken      = "Já existe um usuario cadastrado com esse email."
	MsgUserNotFound    = "Usuario não encontrado para o email informado!!"
	MsgInvalidPassword = "Senha inválida!!"
	MsgPasswordTooLong = "password is too long"
)

type UserService struct {
	repomanager repomanager.RepositoryManager
	passwords   auth.PasswordScheme
}

func NewUserService(m repomanager.RepositoryManager, passwords auth.PasswordScheme) *UserService {
	if passwords == nil {
		passwords = auth.Plain{}
	}
	return &UserService{
		repomanager: m,
		passwords:   passwords,
	}
}

// Register persists a new user. The email check and the insert run in one
// transaction; a unique-index race is reported like a taken email.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	encoded, err := s.passwords.Encode(user.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, common.BusinessRuleError(MsgPasswordTooLong)
		}
		return nil, common.StorageError(fmt.Errorf("error encoding password: %w", err))
	}

	toSave := *user
	toSave.Password = encoded

	var saved *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := validateEmail(ctx, repo, toSave.Email); err != nil {
			return err
		}

		saved, err = repo.Save(ctx, &toSave)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.BusinessRuleError(MsgEmailTaken)
			}
			return err
		}
		return nil
	})

	if err != nil {
		return nil, common.StorageError(err)
	}

	return saved, nil
}

// Authenticate returns the user owning email when password matches.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.AuthError(MsgUserNotFound)
		}
		return nil, common.StorageError(err)
	}

	if !s.passwords.Matches(user.Password, password) {
		return nil, common.AuthError(MsgInvalidPassword)
	}

	return user, nil
}

// ValidateEmail fails when a user with email already exists.
func (s *UserService) ValidateEmail(ctx context.Context, email string) error {
	return validateEmail(ctx, s.repomanager.Users(s.repomanager.Conn()), email)
}

func validateEmail(ctx context.Context, repo users.Repository, email string) error {
	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return common.StorageError(err)
	}
	if exists {
		return common.BusinessRuleError(MsgEmailTaken)
	}
	return nil
}
