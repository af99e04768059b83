package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"github.com/upb/healthedu-backend/services"
)

// immediateTxManager runs fn directly with the caller's context
type immediateTxManager struct {
	calls int
}

func (m *immediateTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	m.calls++
	return fn(ctx, nil)
}

// memArticleRepository is an in-memory ArticleRepository
type memArticleRepository struct {
	mu       sync.Mutex
	articles map[uuid.UUID]models.Article
}

func newMemArticleRepository() *memArticleRepository {
	return &memArticleRepository{articles: make(map[uuid.UUID]models.Article)}
}

// stored mirrors what a TIMESTAMPTZ column keeps: microseconds, nothing finer
func stored(a models.Article) models.Article {
	a.CreatedAt = a.CreatedAt.Truncate(time.Microsecond)
	a.UpdatedAt = a.UpdatedAt.Truncate(time.Microsecond)
	return a
}

func (r *memArticleRepository) Create(ctx context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles[article.ID] = stored(*article)
	return nil
}

func (r *memArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (r *memArticleRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return r.GetByID(ctx, id)
}

func (r *memArticleRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Article{}
	for _, a := range r.articles {
		if filter.Category != nil && a.Category != *filter.Category {
			continue
		}
		if filter.Language != nil && a.Language != *filter.Language {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memArticleRepository) Update(ctx context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[article.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.articles[article.ID] = stored(*article)
	return nil
}

func (r *memArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *memArticleRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.articles)
}

// MockVideoRepository is a mock implementation of VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Video, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTipRepository is a mock implementation of TipRepository
type MockTipRepository struct {
	mock.Mock
}

func (m *MockTipRepository) Create(ctx context.Context, tip *models.Tip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *MockTipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tip), args.Error(1)
}

func (m *MockTipRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tip), args.Error(1)
}

func (m *MockTipRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Tip, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tip), args.Error(1)
}

func (m *MockTipRepository) Update(ctx context.Context, tip *models.Tip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *MockTipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, in services.ContactInput) (*models.ContactMessage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context) ([]*models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactMessage), args.Error(1)
}

func (m *MockContactService) Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

// decodeBody decodes a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}
