package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/app"
	"github.com/upb/healthedu-backend/config"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories/postgres"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var userRowColumns = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

type testServer struct {
	handler http.Handler
	deps    *app.Dependencies
	mock    sqlmock.Sqlmock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithConfig(t, testConfig())
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := zap.NewNop()
	deps, err := app.NewDependenciesFromDB(cfg, postgres.WrapDB(sqlDB, logger), logger)
	require.NoError(t, err)

	return &testServer{handler: SetupRoutes(deps), deps: deps, mock: mock}
}

func (s *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// tokenFor issues a credential token for user
func (s *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, _, err := s.deps.Tokens.IssueToken(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) expectUserLookup(user *models.User) {
	s.mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

const articleBody = `{"title":"Staying hydrated","content":"Drink water regularly.","category":"nutrition","language":"en"}`

func TestAdminWritesWithoutCredential(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/articles", articleBody},
		{http.MethodPatch, "/videos/" + uuid.NewString(), `{"title":"Renamed"}`},
		{http.MethodDelete, "/tips/" + uuid.NewString(), ""},
		{http.MethodGet, "/contact", ""},
	} {
		w := s.do(tc.method, tc.target, "", tc.body)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.target)
		assert.Equal(t, "fail", decode(t, w)["status"])
	}

	// No query or statement reached the database
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAdminWritesWithBadCredential(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/articles", "not-a-token", articleBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestDeletedAccountIsUnauthenticated(t *testing.T) {
	s := newTestServer(t)
	ghost := models.NewUser("Ghost", "ghost@example.com", "h", models.RoleAdmin)
	token := s.tokenFor(t, ghost)

	s.mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(ghost.ID).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	w := s.do(http.MethodDelete, "/articles/"+uuid.NewString(), token, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestEditorIsForbidden(t *testing.T) {
	s := newTestServer(t)
	editor := models.NewUser("Eve", "eve@example.com", "h", models.RoleEditor)
	token := s.tokenFor(t, editor)

	s.expectUserLookup(editor)

	w := s.do(http.MethodPost, "/articles", token, articleBody)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "fail", decode(t, w)["status"])
	// Only the user lookup ran; nothing was inserted
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAdminInvalidPayloadIsNotPersisted(t *testing.T) {
	s := newTestServer(t)
	admin := models.NewUser("Ada", "ada@example.com", "h", models.RoleAdmin)
	token := s.tokenFor(t, admin)

	s.expectUserLookup(admin)

	w := s.do(http.MethodPost, "/articles", token,
		`{"title":"Staying hydrated","content":"Drink water regularly.","category":"astrology","language":"en"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "category")
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAdminCreatesArticle(t *testing.T) {
	s := newTestServer(t)
	admin := models.NewUser("Ada", "ada@example.com", "h", models.RoleAdmin)
	token := s.tokenFor(t, admin)

	s.expectUserLookup(admin)
	s.mock.ExpectExec("INSERT INTO articles").WillReturnResult(sqlmock.NewResult(0, 1))

	w := s.do(http.MethodPost, "/articles", token, articleBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Staying hydrated", data["title"])
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)

	hash, err := s.deps.Hasher.Hash("correct-password")
	require.NoError(t, err)
	user := models.NewUser("Ada", "ada@example.com", hash, models.RoleAdmin)

	s.mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt))
	s.mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	wrongPassword := s.do(http.MethodPost, "/auth/login", "", `{"email":"ada@example.com","password":"wrong-password"}`)
	unknownEmail := s.do(http.MethodPost, "/auth/login", "", `{"email":"nobody@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestLoginThenMe(t *testing.T) {
	s := newTestServer(t)

	hash, err := s.deps.Hasher.Hash("correct-password")
	require.NoError(t, err)
	user := models.NewUser("Ada", "ada@example.com", hash, models.RoleEditor)

	s.mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt))

	w := s.do(http.MethodPost, "/auth/login", "", `{"email":"ADA@example.com","password":"correct-password"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)

	s.expectUserLookup(user)

	w = s.do(http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, user.ID.String(), got["id"])
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestContactSubmissionIsRetrievable(t *testing.T) {
	s := newTestServer(t)

	s.mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(sqlmock.AnyArg(), "A", "a@b.com", "Hi", "Test", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := s.do(http.MethodPost, "/contact", "", `{"name":"A","email":"a@b.com","subject":"Hi","message":"Test"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["message"])
	created := body["data"].(map[string]interface{})
	id := uuid.MustParse(created["id"].(string))

	admin := models.NewUser("Ada", "ada@example.com", "h", models.RoleAdmin)
	token := s.tokenFor(t, admin)
	s.expectUserLookup(admin)
	s.mock.ExpectQuery("SELECT (.+) FROM contact_messages WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "created_at"}).
			AddRow(id, "A", "a@b.com", "Hi", "Test", time.Now().UTC()))

	w = s.do(http.MethodGet, "/contact/"+id.String(), token, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)["data"].(map[string]interface{})
	for _, field := range []string{"id", "name", "email", "subject", "message"} {
		assert.Equal(t, created[field], got[field], field)
	}
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestContactValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/contact", "", `{"name":"A","email":"a@b.com","subject":"Hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < testConfig().RateLimit.Burst+1; i++ {
		last = s.do(http.MethodPost, "/auth/login", "", `{}`)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "fail", decode(t, last)["status"])
}

func TestLoginLimitIgnoresForwardedHeaders(t *testing.T) {
	loginFrom := func(s *testServer, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("rotating X-Forwarded-For shares one budget", func(t *testing.T) {
		s := newTestServer(t)

		var last int
		for i := 0; i < testConfig().RateLimit.Burst+1; i++ {
			last = loginFrom(s, fmt.Sprintf("203.0.113.%d", i+1))
		}

		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("behind a trusted proxy each forwarded client has its own budget", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.TrustProxy = true
		s := newTestServerWithConfig(t, cfg)

		for i := 0; i < cfg.RateLimit.Burst; i++ {
			require.Equal(t, http.StatusBadRequest, loginFrom(s, "203.0.113.7"))
		}
		assert.Equal(t, http.StatusTooManyRequests, loginFrom(s, "203.0.113.7"))
		assert.Equal(t, http.StatusBadRequest, loginFrom(s, "198.51.100.4"))
	})
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "fail", body["status"])
	assert.Contains(t, body["message"], "on this server")

	w = s.do(http.MethodPut, "/articles", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body = decode(t, w)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Method PUT is not allowed on /articles", body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", "").Code)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			RequestTimeout: 30 * time.Second,
		},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-test-secret-test-secret",
			JWTIssuer:  "healthedu-test",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:*"},
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 0.01,
			Burst:             3,
		},
		Observability: config.ObservabilityConfig{
			LogLevel: "debug",
		},
	}
}
