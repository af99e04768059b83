package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

func TestUserService_EnsureUser(t *testing.T) {
	ctx := context.Background()

	newTxMgr := func() *MockTransactionManager {
		txMgr := new(MockTransactionManager)
		txMgr.On("InTransaction", ctx).Return(nil, nil)
		return txMgr
	}

	t.Run("creates missing user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repositories.ErrNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "ada@example.com" && u.Role == models.RoleAdmin && u.PasswordHash == "hashed:supersecret"
		})).Return(nil)

		svc := NewUserService(users, newTxMgr(), &plainHasher{}, zap.NewNop())
		user, created, err := svc.EnsureUser(ctx, "Ada", "ADA@example.com", "supersecret", models.RoleAdmin)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Ada", user.Name)
		users.AssertExpectations(t)
	})

	t.Run("updates existing user", func(t *testing.T) {
		existing := models.NewUser("Ada", "ada@example.com", "hashed:old", models.RoleEditor)

		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(existing, nil)
		users.On("Update", mock.Anything, existing).Return(nil)

		svc := NewUserService(users, newTxMgr(), &plainHasher{}, zap.NewNop())
		user, created, err := svc.EnsureUser(ctx, "", "ada@example.com", "newsecret", models.RoleAdmin)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, "hashed:newsecret", user.PasswordHash)
		assert.Equal(t, "Ada", user.Name)
	})

	t.Run("email taken by a concurrent create", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repositories.ErrNotFound)
		users.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)

		svc := NewUserService(users, newTxMgr(), &plainHasher{}, zap.NewNop())
		_, _, err := svc.EnsureUser(ctx, "Ada", "ada@example.com", "supersecret", models.RoleAdmin)

		require.Error(t, err)
		assert.Equal(t, ErrorTypeConflict, GetErrorType(err))
		assert.Equal(t, ErrDuplicateEmail.Message, GetErrorMessage(err))
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})
}
