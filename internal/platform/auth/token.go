package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a verified token says about its holder.
type Identity struct {
	ID      string `json:"_id"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   int64  `json:"phone"`
}

type Claims struct {
	UserID  string `json:"_id"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   int64  `json:"phone"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies HS256 identity tokens.
// A zero ttl issues tokens without an expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Issue(id Identity) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:  id.ID,
		IsAdmin: id.IsAdmin,
		Name:    id.Name,
		Email:   id.Email,
		Phone:   id.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (m *TokenManager) Verify(tokenStr string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		// alg 固定（none攻撃とか回避）
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		ID:      claims.UserID,
		IsAdmin: claims.IsAdmin,
		Name:    claims.Name,
		Email:   claims.Email,
		Phone:   claims.Phone,
	}, nil
}
