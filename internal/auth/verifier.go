package auth

import (
	"context"
	"errors"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-service/internal/config"
)

// VerifiedToken carries the claim set of a token that passed signature and
// registered-claim checks, plus the metadata the revocation list needs.
type VerifiedToken struct {
	Claims    ClaimSet
	ExpiresAt time.Time
}

// TokenVerifier validates bearer tokens. With a JWKS URL configured it
// verifies RS256 signatures against the identity provider's key set,
// refreshing keys in the background; otherwise it falls back to an HS256
// shared secret for local development.
type TokenVerifier struct {
	jwks     *keyfunc.JWKS
	secret   []byte
	issuer   string
	audience string
}

// NewTokenVerifier builds a verifier from auth configuration. The context
// bounds the background JWKS refresh goroutine.
func NewTokenVerifier(ctx context.Context, cfg config.AuthConfig, logger *zap.Logger) (*TokenVerifier, error) {
	v := &TokenVerifier{
		secret:   []byte(cfg.DevSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}

	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			Ctx: ctx,
			RefreshErrorHandler: func(err error) {
				logger.Warn("jwks refresh failed", zap.Error(err))
			},
			RefreshInterval:   cfg.JWKSRefreshInterval(),
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, err
		}
		v.jwks = jwks
		logger.Info("jwks loaded", zap.String("url", cfg.JWKSURL))
	} else {
		logger.Warn("AUTH_JWKS_URL not set; verifying tokens with HS256 dev secret")
	}

	return v, nil
}

// Verify parses and validates a bearer token, returning its claim set.
// Tokens must carry an exp claim; revocation tracking relies on it.
func (v *TokenVerifier) Verify(tokenStr string) (*VerifiedToken, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var keyFn jwt.Keyfunc
	if v.jwks != nil {
		keyFn = v.jwks.Keyfunc
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256"}))
	} else {
		keyFn = func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return v.secret, nil
		}
		opts = append(opts, jwt.WithValidMethods([]string{"HS256"}))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, keyFn, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	verified := &VerifiedToken{Claims: ClaimSet(claims)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		verified.ExpiresAt = exp.Time
	}
	return verified, nil
}

// Close stops the background JWKS refresh.
func (v *TokenVerifier) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}
