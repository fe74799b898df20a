package auth_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/webmaster-client/internal/auth"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: "y0_AgAAAAAA-test", wantErr: false},
		{name: "empty token", token: "", wantErr: true},
		{name: "whitespace only", token: "   ", wantErr: true},
		{name: "newline injection", token: "abc\r\nX-Evil: 1", wantErr: true},
		{name: "tab inside", token: "abc\tdef", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := auth.ValidateToken(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, webmaster.ErrAuthentication)
				assert.Equal(t, webmaster.KindAuthentication, webmaster.KindOf(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestNewTokenSource(t *testing.T) {
	t.Parallel()

	t.Run("default scheme", func(t *testing.T) {
		t.Parallel()

		source, err := auth.NewTokenSource("test-token", "")
		require.NoError(t, err)

		token, err := source.Token()
		require.NoError(t, err)
		assert.Equal(t, "OAuth", token.Type())
		assert.Equal(t, "test-token", token.AccessToken)
	})

	t.Run("custom scheme", func(t *testing.T) {
		t.Parallel()

		source, err := auth.NewTokenSource("test-token", "Bearer")
		require.NoError(t, err)

		token, err := source.Token()
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.Type())
	})

	t.Run("scheme with spaces", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewTokenSource("test-token", "O Auth")
		require.ErrorIs(t, err, webmaster.ErrAuthentication)
	})
}

func TestNewTransport(t *testing.T) {
	t.Parallel()

	t.Run("header on every request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			assert.Equal(t, "OAuth test-token", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		transport, err := auth.NewTransport("test-token", "", nil)
		require.NoError(t, err)

		httpClient := &http.Client{Transport: transport}

		for _, path := range []string{"/user", "/user/1/hosts", "/user/1/hosts/h/summary"} {
			for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
				req, err := http.NewRequestWithContext(t.Context(), method, server.URL+path, nil)
				require.NoError(t, err)

				resp, err := httpClient.Do(req)
				require.NoError(t, err)
				require.NoError(t, resp.Body.Close())
			}
		}

		assert.Equal(t, int32(9), calls.Load())
	})

	t.Run("caller request is not mutated", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		transport, err := auth.NewTransport("test-token", "OAuth", http.DefaultTransport)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
		require.NoError(t, err)

		resp, err := transport.RoundTrip(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("existing header is replaced", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, []string{"OAuth test-token"}, request.Header.Values("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		transport, err := auth.NewTransport("test-token", "", nil)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer stale")

		resp, err := transport.RoundTrip(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewTransport("", "", nil)
		require.ErrorIs(t, err, webmaster.ErrAuthentication)
	})
}
