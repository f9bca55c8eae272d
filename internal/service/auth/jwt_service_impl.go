package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
)

// DevelopmentSecret signs tokens outside production. It is public, so any
// token signed with it can be forged; NewJWTService warns when it is used.
const DevelopmentSecret = "secKeyForDevelopment"

// SigningSecret selects the HMAC key for environment. Production uses the
// configured secret; every other environment uses DevelopmentSecret. The
// second result reports whether the fallback was chosen.
func SigningSecret(environment, configured string) (string, bool) {
	if environment == config.EnvProduction {
		return configured, false
	}
	return DevelopmentSecret, true
}

// hmacJWTService is an implementation of TokenService using HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we use.
// The subject is stored as "_id" and mirrored in the registered "sub" claim.
type jwtCustomClaims struct {
	SubjectID string `json:"_id"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements TokenService interface
var _ TokenService = (*hmacJWTService)(nil)

// NewJWTService creates a token service for the given environment. Outside
// production it signs with DevelopmentSecret and logs a warning saying so.
func NewJWTService(environment, secret string, log *slog.Logger) (TokenService, error) {
	if log == nil {
		log = slog.Default()
	}

	key, fallback := SigningSecret(environment, secret)
	if fallback {
		log.Warn("signing tokens with the development fallback secret; tokens are forgeable",
			slog.String("environment", environment))
	} else if key == "" {
		return nil, ErrMissingSecret
	}

	return newHMACJWTService([]byte(key), time.Now), nil
}

func newHMACJWTService(key []byte, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey: key,
		lifetime:   TokenLifetime,
		timeFunc:   timeFunc,
	}
}

// Issue creates a signed JWT with the subject's identity.
func (s *hmacJWTService) Issue(ctx context.Context, subjectID string) (string, error) {
	now := s.timeFunc().Truncate(time.Second)

	claims := jwtCustomClaims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign JWT",
			"error", err,
			"subject_id", subjectID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// Verify validates a JWT and returns its claims. No clock skew is allowed:
// a token is rejected from the second it expires.
func (s *hmacJWTService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.SubjectID == "" {
		log.Debug("token validation failed: missing subject")
		return nil, ErrInvalidToken
	}

	return &Claims{
		SubjectID: claims.SubjectID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
