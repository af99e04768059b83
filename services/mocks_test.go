package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"
	"github.com/upb/healthedu-backend/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	args := m.Called(ctx, id)
	if msg := args.Get(0); msg != nil {
		return msg.(*models.ContactMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	args := m.Called(ctx)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]*models.ContactMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

var errMismatch = errors.New("password mismatch")

// plainHasher stores passwords with a prefix and counts comparisons
type plainHasher struct {
	compares int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Compare(hash, password string) error {
	h.compares++
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) IssueToken(user *models.User) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, time.Now().Add(time.Hour), nil
}

type fakeMailSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeMailSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}
