package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"
	"marketplace_client/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// countingServer records how many requests reached it and serves a canned
// auth response.
func countingServer(t *testing.T, status int, body interface{}) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newAuthUseCase(serverURL string, store session.Store) domain.AuthUseCase {
	api := clients.NewAPIClient(serverURL, time.Second, nil, testLogger())
	return NewAuthUseCase(api, store, testLogger())
}

func TestLoginSuccess(t *testing.T) {
	want := domain.AuthSession{
		Token: "issued-token",
		User:  domain.User{ID: "u1", Name: "Ana", Email: "a@b.com", Phone: "11999999999"},
	}
	server, calls := countingServer(t, http.StatusOK, want)

	store := session.NewMemoryStore()
	uc := newAuthUseCase(server.URL, store)

	auth, err := uc.Login(context.Background(), "a@b.com", "abcdef")
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "login must issue exactly one network call")
	assert.Equal(t, want, *auth, "token and user must match the response body verbatim")

	token, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token, "login must persist the token")
}

func TestLoginValidationNeverReachesNetwork(t *testing.T) {
	server, calls := countingServer(t, http.StatusOK, nil)
	uc := newAuthUseCase(server.URL, session.NewMemoryStore())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"malformed email", "not-an-email", "abcdef"},
		{"missing domain", "a@", "abcdef"},
		{"short password", "a@b.com", "abcde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestLoginRejectedCredentials(t *testing.T) {
	server, _ := countingServer(t, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	store := session.NewMemoryStore()
	uc := newAuthUseCase(server.URL, store)

	_, err := uc.Login(context.Background(), "a@b.com", "wrongpw")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))

	_, err = store.Get()
	assert.ErrorIs(t, err, session.ErrNoToken, "a failed login must not persist anything")
}

func validRegisterData() domain.RegisterData {
	return domain.RegisterData{
		Name:            "Ana",
		Phone:           "11999999999",
		Email:           "a@b.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
	}
}

func TestRegisterValidationNeverReachesNetwork(t *testing.T) {
	server, calls := countingServer(t, http.StatusCreated, nil)
	uc := newAuthUseCase(server.URL, session.NewMemoryStore())

	mutations := []struct {
		name   string
		mutate func(*domain.RegisterData)
	}{
		{"short name", func(d *domain.RegisterData) { d.Name = "A" }},
		{"short phone", func(d *domain.RegisterData) { d.Phone = "119999" }},
		{"malformed email", func(d *domain.RegisterData) { d.Email = "nope" }},
		{"short password", func(d *domain.RegisterData) { d.Password, d.ConfirmPassword = "abc", "abc" }},
		{"password mismatch", func(d *domain.RegisterData) { d.Password, d.ConfirmPassword = "abcdef", "abcdeg" }},
	}
	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegisterData()
			tt.mutate(&data)
			_, err := uc.Register(context.Background(), data)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestRegisterSuccessPersistsToken(t *testing.T) {
	want := domain.AuthSession{
		Token: "fresh-token",
		User:  domain.User{ID: "u2", Name: "Ana", Email: "a@b.com"},
	}
	server, calls := countingServer(t, http.StatusCreated, want)
	store := session.NewMemoryStore()
	uc := newAuthUseCase(server.URL, store)

	auth, err := uc.Register(context.Background(), validRegisterData())
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, want, *auth)

	token, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestLogoutClearsStoredToken(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set("abc"))

	uc := newAuthUseCase("http://unused.invalid", store)
	uc.Logout()

	_, err := store.Get()
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestLogoutSwallowsStorageFailure(t *testing.T) {
	uc := newAuthUseCase("http://unused.invalid", failingStore{})
	// Must not panic or surface the error anywhere.
	uc.Logout()
}

type failingStore struct{}

func (failingStore) Get() (string, error) { return "", assert.AnError }
func (failingStore) Set(string) error     { return assert.AnError }
func (failingStore) Clear() error         { return assert.AnError }
