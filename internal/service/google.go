package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deelaka-ransilu/bridal-shop-backend/config"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/circuit"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/pool"
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleIdentity is the verified subject behind a Google ID token
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Iss           string `json:"iss"`
	Sub           string `json:"sub"`
	Exp           string `json:"exp"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

var errRejectedToken = errors.New("google rejected the id token")

// GoogleVerifier checks ID tokens against Google's tokeninfo endpoint.
// Upstream failures trip the breaker; rejected tokens do not.
type GoogleVerifier struct {
	clientID string
	endpoint string
	client   *http.Client
	breaker  *circuit.Breaker
	now      func() time.Time
}

func NewGoogleVerifier(cfg config.GoogleConfig) *GoogleVerifier {
	breakerCfg := circuit.DefaultConfig()
	if cfg.BreakerThreshold > 0 {
		breakerCfg.Threshold = cfg.BreakerThreshold
	}
	if cfg.BreakerTimeout > 0 {
		breakerCfg.Timeout = cfg.BreakerTimeout
	}
	breakerCfg.IsFailure = func(err error) bool {
		return !errors.Is(err, errRejectedToken)
	}

	return &GoogleVerifier{
		clientID: cfg.ClientID,
		endpoint: cfg.TokenInfoURL,
		client:   pool.NewHTTPClient(pool.Config{RequestTimeout: cfg.Timeout}),
		breaker:  circuit.NewBreaker("google-tokeninfo", breakerCfg, logger.GetLogger()),
		now:      time.Now,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "VerifyGoogleToken")

	var info *tokenInfo
	err := v.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		info, err = v.fetch(ctx, idToken)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, errRejectedToken):
			logger.WarnWithContext(ctx, "Google ID token rejected").Err(err).Log()
			return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid Google ID token")
		case errors.Is(err, circuit.ErrCircuitOpen), errors.Is(err, circuit.ErrTooManyRequests):
			return nil, apperrors.WithMessage(apperrors.ErrServiceUnavailable, "Google sign-in is temporarily unavailable")
		default:
			logger.ErrorWithContext(ctx, "Google token verification failed").Err(err).Log()
			return nil, apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
		}
	}

	if err := v.check(info); err != nil {
		logger.WarnWithContext(ctx, "Google ID token rejected").Err(err).Log()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid Google ID token")
	}

	return &GoogleIdentity{Subject: info.Sub, Email: info.Email, Name: info.Name}, nil
}

func (v *GoogleVerifier) fetch(ctx context.Context, idToken string) (*tokenInfo, error) {
	endpoint := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, errRejectedToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	return &info, nil
}

func (v *GoogleVerifier) check(info *tokenInfo) error {
	if v.clientID == "" || info.Aud != v.clientID {
		return fmt.Errorf("audience %q not accepted", info.Aud)
	}
	if !googleIssuers[info.Iss] {
		return fmt.Errorf("issuer %q not accepted", info.Iss)
	}
	exp, err := strconv.ParseInt(info.Exp, 10, 64)
	if err != nil || !v.now().Before(time.Unix(exp, 0)) {
		return errors.New("token expired")
	}
	if info.Sub == "" || info.Email == "" {
		return errors.New("token carries no subject or email")
	}
	return nil
}

// BreakerStats reports the tokeninfo circuit for the detailed health check
func (v *GoogleVerifier) BreakerStats() map[string]interface{} {
	return v.breaker.Stats()
}

// Close releases idle connections to the tokeninfo endpoint
func (v *GoogleVerifier) Close() {
	pool.CloseIdle(v.client)
}
