package usecase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"
	"marketplace_client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileValidation(t *testing.T) {
	server, calls := countingServer(t, http.StatusOK, nil)
	api := clients.NewAPIClient(server.URL, time.Second, session.NewMemoryStore(), testLogger())
	uc := NewUserUseCase(api, testLogger())

	tests := []struct {
		name string
		data domain.UpdateProfileData
	}{
		{"short name", domain.UpdateProfileData{Name: "A", Phone: "11999999999", Email: "a@b.com"}},
		{"short phone", domain.UpdateProfileData{Name: "Ana", Phone: "123", Email: "a@b.com"}},
		{"bad email", domain.UpdateProfileData{Name: "Ana", Phone: "11999999999", Email: "a@b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpdateProfile(context.Background(), tt.data)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestUpdatePasswordValidation(t *testing.T) {
	server, calls := countingServer(t, http.StatusNoContent, nil)
	api := clients.NewAPIClient(server.URL, time.Second, session.NewMemoryStore(), testLogger())
	uc := NewUserUseCase(api, testLogger())

	tests := []struct {
		name string
		data domain.UpdatePasswordData
	}{
		{"empty current", domain.UpdatePasswordData{NewPassword: "abcdef", ConfirmPassword: "abcdef"}},
		{"short new", domain.UpdatePasswordData{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"}},
		{"mismatch", domain.UpdatePasswordData{CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdeg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.UpdatePassword(context.Background(), tt.data)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestGetProfileAuthErrorSurfaces(t *testing.T) {
	server, _ := countingServer(t, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	api := clients.NewAPIClient(server.URL, time.Second, session.NewMemoryStore(), testLogger())
	uc := NewUserUseCase(api, testLogger())

	_, err := uc.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestUpdatePasswordSendsFullPayload(t *testing.T) {
	var calls atomic.Int64
	server := newBodyCapturingServer(t, &calls, http.StatusNoContent)
	api := clients.NewAPIClient(server.url, time.Second, session.NewMemoryStore(), testLogger())
	uc := NewUserUseCase(api, testLogger())

	err := uc.UpdatePassword(context.Background(), domain.UpdatePasswordData{
		CurrentPassword: "oldpass",
		NewPassword:     "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.JSONEq(t,
		`{"currentPassword":"oldpass","newPassword":"newpass1","confirmPassword":"newpass1"}`,
		server.lastBody())
}

type capturingServer struct {
	url  string
	mu   sync.Mutex
	body []byte
}

func newBodyCapturingServer(t *testing.T, calls *atomic.Int64, status int) *capturingServer {
	t.Helper()
	cs := &capturingServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		cs.mu.Lock()
		cs.body = raw
		cs.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	cs.url = server.URL
	return cs
}

func (s *capturingServer) lastBody() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.body)
}
