package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendSender_Send(t *testing.T) {
	var got map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := &ResendSender{
		apiKey:   "re_test",
		from:     "Lender <noreply@lender.app>",
		endpoint: srv.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	err := sender.Send(context.Background(), "rita@example.com", "Hej", "<p>Hej</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Lender <noreply@lender.app>", got["from"])
	assert.Equal(t, []any{"rita@example.com"}, got["to"])
	assert.Equal(t, "Hej", got["subject"])
}

func TestResendSender_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := &ResendSender{
		apiKey:   "re_bad",
		from:     "Lender <noreply@lender.app>",
		endpoint: srv.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	err := sender.Send(context.Background(), "rita@example.com", "Hej", "<p>Hej</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
