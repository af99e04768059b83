package services

import (
	"context"
	"errors"
	"strings"

	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// UserService manages user accounts outside the HTTP surface
type UserService struct {
	users  repositories.UserRepository
	txMgr  repositories.TransactionManager
	hasher PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, txMgr repositories.TransactionManager, hasher PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		txMgr:  txMgr,
		hasher: hasher,
		logger: logger,
	}
}

// EnsureUser creates the user, or resets the role, name and password of an
// existing user with the same email. The returned bool reports creation.
// Input is validated by the caller.
func (s *UserService) EnsureUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, bool, error) {
	email = models.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, WrapInternal("failed to hash password", err)
	}

	type outcome struct {
		user    *models.User
		created bool
	}

	out, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context) (outcome, error) {
		existing, err := s.users.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			user := models.NewUser(name, email, hash, role)
			if err := s.users.Create(ctx, user); err != nil {
				if errors.Is(err, repositories.ErrDuplicate) {
					return outcome{}, NewDomainError(ErrorTypeConflict, ErrDuplicateEmail.Message, err)
				}
				return outcome{}, FromRepositoryError(err, nil)
			}
			return outcome{user: user, created: true}, nil
		case err != nil:
			return outcome{}, FromRepositoryError(err, nil)
		}

		existing.Role = role
		existing.PasswordHash = hash
		if name != "" {
			existing.Name = name
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return outcome{}, FromRepositoryError(err, ErrUserNotFound)
		}
		return outcome{user: existing}, nil
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("user ensured",
		zap.String("user_id", out.user.ID.String()),
		zap.String("role", string(role)),
		zap.Bool("created", out.created),
	)
	return out.user, out.created, nil
}
