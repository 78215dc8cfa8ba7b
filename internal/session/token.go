package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/dmitrijs2005/studymate/internal/storage"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session user next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	User models.User `json:"user"`
}

// TokenCodec signs and verifies session tokens with HS256.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenCodec returns a codec for secret. A non-positive validity issues
// tokens without expiry.
func NewTokenCodec(secret []byte, validity time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, validity: validity, now: time.Now}
}

func (c *TokenCodec) Encode(u models.User) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.Email,
			IssuedAt: jwt.NewNumericDate(now),
		},
		User: u,
	}
	if c.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return s, nil
}

func (c *TokenCodec) Decode(tokenString string) (models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.User{}, common.ErrInvalidToken
	}
	return claims.User, nil
}

// LoadOrCreateSecret returns configured when set. Otherwise it returns the
// installation secret from kv, generating and persisting one on first use.
func LoadOrCreateSecret(ctx context.Context, kv storage.Store, configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	saved, err := kv.Get(ctx, common.SecretKey)
	if err != nil {
		return nil, err
	}
	if len(saved) > 0 {
		return saved, nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	if err := kv.Set(ctx, common.SecretKey, []byte(secret)); err != nil {
		return nil, err
	}
	return []byte(secret), nil
}
