package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies session JWTs.
type TokenService struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWT.Secret),
		expire: cfg.JWT.ExpireTime,
		now:    time.Now,
	}
}

// IssueSessionToken returns a signed JWT carrying the user id.
func (s *TokenService) IssueSessionToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.expire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifySessionToken parses a JWT and returns the user id it carries.
// Expired, malformed or wrongly-signed tokens all map to ErrTokenInvalid.
func (s *TokenService) VerifySessionToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, util.ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, util.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, util.ErrTokenInvalid
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, util.ErrTokenInvalid
	}
	return uint(id), nil
}

// GenerateOpaqueToken returns 32 random bytes hex-encoded, used for the
// email verification and password reset flows.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
