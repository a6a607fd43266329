package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

// tokenTTL matches the 7-day session lifetime.
const tokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	UserID int64 `json:"uid"`
	Epoch  int64 `json:"epoch"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens. A token embeds the
// session epoch observed at issuance; the auth middleware rejects tokens
// whose epoch is older than the user's current one, which invalidates every
// outstanding session without a server-side revocation list.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) Issue(userID, sessionEpoch int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		Epoch:  sessionEpoch,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &domain.TokenClaims{
		UserID:   claims.UserID,
		Epoch:    claims.Epoch,
		IssuedAt: issuedAt,
	}, nil
}

var _ ports.AuthTokens = (*TokenService)(nil)
