package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and notifies", func(t *testing.T) {
		contacts := new(MockContactRepository)
		notifier := new(MockNotifier)
		contacts.On("Create", ctx, mock.AnythingOfType("*models.ContactMessage")).Return(nil)
		notifier.On("NotifyContact", ctx, mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		svc := NewContactService(contacts, notifier, zap.NewNop())
		msg, err := svc.Submit(ctx, ContactInput{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Test"})

		require.NoError(t, err)
		assert.Equal(t, "A", msg.Name)
		assert.Equal(t, "a@b.com", msg.Email)
		assert.Equal(t, "Hi", msg.Subject)
		assert.Equal(t, "Test", msg.Message)
		assert.NotEqual(t, uuid.Nil, msg.ID)
		contacts.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("strips markup but keeps text", func(t *testing.T) {
		contacts := new(MockContactRepository)
		contacts.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewContactService(contacts, nil, zap.NewNop())
		msg, err := svc.Submit(ctx, ContactInput{
			Name:    "O'Brien",
			Email:   "ob@example.com",
			Subject: "<b>Hello</b>",
			Message: `Click <a href="http://x">here</a> & <script>alert(1)</script>now`,
		})

		require.NoError(t, err)
		assert.Equal(t, "O'Brien", msg.Name)
		assert.Equal(t, "Hello", msg.Subject)
		assert.Equal(t, "Click here & now", msg.Message)
	})

	t.Run("markup-only fields are rejected without persisting", func(t *testing.T) {
		contacts := new(MockContactRepository)

		svc := NewContactService(contacts, nil, zap.NewNop())
		_, err := svc.Submit(ctx, ContactInput{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "<script>x</script>"})

		assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
		fields, ok := GetErrorDetails(err)["fields"].(map[string]string)
		require.True(t, ok)
		assert.Contains(t, fields, "message")
		contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		contacts := new(MockContactRepository)
		notifier := new(MockNotifier)
		contacts.On("Create", ctx, mock.Anything).Return(nil)
		notifier.On("NotifyContact", ctx, mock.Anything).Return(errors.New("sendgrid down"))

		svc := NewContactService(contacts, notifier, zap.NewNop())
		_, err := svc.Submit(ctx, ContactInput{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Test"})

		assert.NoError(t, err)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		contacts := new(MockContactRepository)
		contacts.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

		svc := NewContactService(contacts, nil, zap.NewNop())
		_, err := svc.Submit(ctx, ContactInput{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Test"})

		assert.Equal(t, ErrorTypeInternal, GetErrorType(err))
	})
}

func TestContactService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	contacts := new(MockContactRepository)
	contacts.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

	svc := NewContactService(contacts, nil, zap.NewNop())
	_, err := svc.Get(ctx, id)

	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
	assert.Equal(t, ErrContactNotFound.Message, GetErrorMessage(err))
}

func TestContactService_List(t *testing.T) {
	ctx := context.Background()
	stored := []*models.ContactMessage{models.NewContactMessage("A", "a@b.com", "Hi", "Test")}

	contacts := new(MockContactRepository)
	contacts.On("List", ctx).Return(stored, nil)

	svc := NewContactService(contacts, nil, zap.NewNop())
	got, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
