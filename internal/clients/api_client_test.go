package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

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

func TestBearerHeaderAttachedWhenTokenStored(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set("abc"))

	client := NewAPIClient(server.URL, time.Second, store, testLogger())
	require.NoError(t, client.Get(context.Background(), "/user/profile", nil, nil))

	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestBearerHeaderOmittedWhenNoToken(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, time.Second, session.NewMemoryStore(), testLogger())
	require.NoError(t, client.Get(context.Background(), "/user/profile", nil, nil))

	assert.False(t, hadAuth, "request without a stored token must omit the header entirely")
}

func TestNilTokenSourceNeverAuthenticates(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, time.Second, nil, testLogger())
	require.NoError(t, client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"}, nil))

	assert.False(t, hadAuth)
}

func TestRequestDecoration(t *testing.T) {
	var contentType, accept, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		accept = r.Header.Get("Accept")
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, time.Second, nil, testLogger())
	require.NoError(t, client.Get(context.Background(), "/products", nil, nil))

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "application/json", accept)
	assert.NotEmpty(t, requestID)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.ErrorKind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`, domain.KindAuth, "Invalid token"},
		{"forbidden", http.StatusForbidden, `{}`, domain.KindAuth, "authentication required"},
		{"not found", http.StatusNotFound, `{"error":"product not found"}`, domain.KindNotFound, "product not found"},
		{"server error with message field", http.StatusInternalServerError, `{"message":"boom"}`, domain.KindServer, "boom"},
		{"server error without body", http.StatusBadGateway, ``, domain.KindServer, "server returned status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewAPIClient(server.URL, time.Second, nil, testLogger())
			err := client.Get(context.Background(), "/whatever", nil, nil)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantMsg, de.Message)
		})
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewAPIClient(server.URL, time.Second, nil, testLogger())
	err := client.Get(context.Background(), "/products", nil, nil)

	require.Error(t, err)
	assert.True(t, domain.IsNetwork(err))
}

func TestQueryEncoding(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, time.Second, nil, testLogger())

	var out []struct{}
	require.NoError(t, client.Get(context.Background(), "/products", nil, &out))
	assert.Empty(t, rawQuery, "nil query must not produce a query string")

	query := url.Values{}
	query.Set("search", "bike")
	require.NoError(t, client.Get(context.Background(), "/products", query, &out))
	assert.Equal(t, "search=bike", rawQuery)
}

func TestTokenSourceFailureDegradesToAnonymous(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// A store over an unreadable directory fails Get; the request must
	// still go out, just unauthenticated.
	client := NewAPIClient(server.URL, time.Second, failingTokenSource{}, testLogger())
	require.NoError(t, client.Get(context.Background(), "/products", nil, nil))

	assert.False(t, hadAuth)
}

type failingTokenSource struct{}

func (failingTokenSource) Get() (string, error) {
	return "", assert.AnError
}
