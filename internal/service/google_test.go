package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deelaka-ransilu/bridal-shop-backend/config"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
)

func tokenInfoServer(t *testing.T, status int, info map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(info)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func verifierFor(url string) *GoogleVerifier {
	return NewGoogleVerifier(config.GoogleConfig{
		ClientID:         "client-123",
		TokenInfoURL:     url,
		Timeout:          time.Second,
		BreakerThreshold: 2,
		BreakerTimeout:   time.Minute,
	})
}

func validInfo() map[string]string {
	return map[string]string{
		"aud":   "client-123",
		"iss":   "https://accounts.google.com",
		"sub":   "g-1",
		"email": "bride@example.com",
		"name":  "Bride",
		"exp":   strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
	}
}

func TestGoogleVerifier_AcceptsValidToken(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, validInfo())

	identity, err := verifierFor(srv.URL).Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "g-1", identity.Subject)
	assert.Equal(t, "bride@example.com", identity.Email)
	assert.Equal(t, "Bride", identity.Name)
}

func TestGoogleVerifier_RejectsForeignAudience(t *testing.T) {
	info := validInfo()
	info["aud"] = "someone-else"
	srv := tokenInfoServer(t, http.StatusOK, info)

	_, err := verifierFor(srv.URL).Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestGoogleVerifier_RejectedTokensDoNotOpenBreaker(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusBadRequest, map[string]string{"error": "invalid_token"})
	v := verifierFor(srv.URL)

	for i := 0; i < 5; i++ {
		_, err := v.Verify(context.Background(), "bad")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestGoogleVerifier_UpstreamFailuresOpenBreaker(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusInternalServerError, nil)
	v := verifierFor(srv.URL)

	for i := 0; i < 2; i++ {
		_, err := v.Verify(context.Background(), "tok")
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	}

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Equal(t, "Google sign-in is temporarily unavailable", apperrors.GetErrorMessage(err))
}
