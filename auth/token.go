package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/models"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 5 * 24 * time.Hour

// Claims are the session claims embedded in a token. They snapshot the
// user at issuance time; only user existence is re-checked on each request.
type Claims struct {
	UserID   uint        `json:"id"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Base     string      `json:"base"`
	Username string      `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. The signing key
// comes from configuration; there is no built-in default.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

// Issue produces a signed token for the user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Name:     user.Name,
		Role:     user.Role,
		Base:     user.Base,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}
